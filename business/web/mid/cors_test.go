package mid_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/powlabs/ledger/business/web/mid"
)

// Success and failure markers.
const (
	success = "✓"
	failed  = "✗"
)

func Test_Cors(t *testing.T) {
	t.Log("Given the need to serve browser clients across origins.")
	{
		t.Logf("\tTest 0:\tWhen handling a request through the cors middleware.")
		{
			next := func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
				return nil
			}
			handler := mid.Cors("*")(next)

			w := httptest.NewRecorder()
			r := httptest.NewRequest(http.MethodGet, "/v1/genesis/list", nil)

			if err := handler(context.Background(), w, r); err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould be able to run the handler: %v", failed, err)
			}
			t.Logf("\t%s\tTest 0:\tShould be able to run the handler.", success)

			if got := w.Header().Get("Access-Control-Allow-Origin"); got != "*" {
				t.Errorf("\t%s\tTest 0:\tShould set the allowed origin: got %q.", failed, got)
			} else {
				t.Logf("\t%s\tTest 0:\tShould set the allowed origin.", success)
			}

			if got := w.Header().Get("Access-Control-Allow-Methods"); got != "GET, POST, OPTIONS" {
				t.Errorf("\t%s\tTest 0:\tShould only allow the methods the api serves: got %q.", failed, got)
			} else {
				t.Logf("\t%s\tTest 0:\tShould only allow the methods the api serves.", success)
			}
		}
	}
}
