package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/JohnsonOduri/Ur-OrbIIIT/config"
)

// The assistant backend can take a while to cold-start, so the proxy waits
// much longer than a normal API call before giving up.
const askmeTimeout = 60 * time.Second

type AskmeHandler struct {
	cfg    *config.Config
	client *http.Client
}

func NewAskmeHandler(cfg *config.Config) *AskmeHandler {
	return &AskmeHandler{cfg: cfg, client: &http.Client{}}
}

type askmeReq struct {
	Message string `json:"message"`
}

// POST /askme
func (h *AskmeHandler) Chat(c echo.Context) error {
	if h.cfg.AskmeURL == "" {
		return c.JSON(http.StatusServiceUnavailable, map[string]any{"error": "ASKME_NOT_CONFIGURED"})
	}

	var req askmeReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_PAYLOAD"})
	}
	if strings.TrimSpace(req.Message) == "" {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "MISSING_FIELDS"})
	}

	body, _ := json.Marshal(map[string]string{"message": strings.TrimSpace(req.Message)})

	ctx, cancel := context.WithTimeout(c.Request().Context(), askmeTimeout)
	defer cancel()
	upstream, err := http.NewRequestWithContext(ctx, http.MethodPost, h.cfg.AskmeURL, bytes.NewReader(body))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]any{"error": "UPSTREAM_REQUEST_FAILED"})
	}
	upstream.Header.Set("Content-Type", "application/json")

	resp, err := h.client.Do(upstream)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return c.JSON(http.StatusGatewayTimeout, map[string]any{"error": "UPSTREAM_TIMEOUT"})
		}
		return c.JSON(http.StatusBadGateway, map[string]any{"error": "UPSTREAM_UNAVAILABLE"})
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return c.JSON(http.StatusBadGateway, map[string]any{"error": "UPSTREAM_READ_FAILED"})
	}
	return c.Blob(resp.StatusCode, "application/json", payload)
}
