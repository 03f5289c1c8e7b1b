package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JohnsonOduri/Ur-OrbIIIT/config"
)

func TestAskmeChat(t *testing.T) {
	stu := student("1")

	t.Run("not configured", func(t *testing.T) {
		ask := NewAskmeHandler(&config.Config{})
		rec := call(t, ask.Chat, http.MethodPost, "/askme", `{"message":"hi"}`, stu, nil)
		require.Equal(t, http.StatusServiceUnavailable, rec.Code)
		assert.Equal(t, "ASKME_NOT_CONFIGURED", errCode(t, rec))
	})

	t.Run("blank message", func(t *testing.T) {
		ask := NewAskmeHandler(&config.Config{AskmeURL: "http://localhost:1"})
		rec := call(t, ask.Chat, http.MethodPost, "/askme", `{"message":"  "}`, stu, nil)
		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "MISSING_FIELDS", errCode(t, rec))
	})

	t.Run("relays the upstream reply", func(t *testing.T) {
		upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			body, _ := io.ReadAll(r.Body)
			var in map[string]string
			require.NoError(t, json.Unmarshal(body, &in))
			assert.Equal(t, "when is the mess open?", in["message"])
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"reply":"7am to 9pm"}`))
		}))
		defer upstream.Close()

		ask := NewAskmeHandler(&config.Config{AskmeURL: upstream.URL})
		rec := call(t, ask.Chat, http.MethodPost, "/askme", `{"message":" when is the mess open? "}`, stu, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "7am to 9pm", decode[map[string]string](t, rec)["reply"])
	})

	t.Run("unreachable upstream", func(t *testing.T) {
		ask := NewAskmeHandler(&config.Config{AskmeURL: "http://127.0.0.1:1/chat"})
		rec := call(t, ask.Chat, http.MethodPost, "/askme", `{"message":"hi"}`, stu, nil)
		require.Equal(t, http.StatusBadGateway, rec.Code)
		assert.Equal(t, "UPSTREAM_UNAVAILABLE", errCode(t, rec))
	})
}
