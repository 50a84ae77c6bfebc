package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"scanflow/internal/pkg/cache"
)

// scanPayload espelha o corpo de POST /v1/scan apenas para o debounce.
type scanPayload struct {
	Barcode string `json:"barcode"`
}

// ScanCooldown aplica o debounce de leituras: o mesmo código de barras lido
// duas vezes dentro da janela é descartado antes de chegar ao engine. Este é
// um papel do colaborador de borda — o engine em si nunca deduplica e trata
// cada submit como um evento novo.
func ScanCooldown(client cache.Client, window time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if window <= 0 || r.Body == nil {
				next.ServeHTTP(w, r)
				return
			}

			body, err := io.ReadAll(r.Body)
			if err != nil {
				http.Error(w, "Internal Server Error", http.StatusInternalServerError)
				return
			}
			// Restaura o corpo para o handler seguinte
			r.Body = io.NopCloser(bytes.NewReader(body))

			var payload scanPayload
			if err := json.Unmarshal(body, &payload); err != nil || payload.Barcode == "" {
				// Corpo não reconhecido: deixa o handler rejeitar com a
				// mensagem de validação apropriada.
				next.ServeHTTP(w, r)
				return
			}

			key := "scan-cooldown:" + payload.Barcode
			stored, err := client.SetNX(context.Background(), key, 1, window)
			if err != nil {
				// Cache indisponível não pode travar o operador: segue sem debounce.
				next.ServeHTTP(w, r)
				return
			}

			if !stored {
				// Leitura repetida dentro da janela: ignorada silenciosamente.
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusOK)
				json.NewEncoder(w).Encode(map[string]interface{}{
					"severity": "info",
					"message":  "duplicate scan ignored",
				})
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
