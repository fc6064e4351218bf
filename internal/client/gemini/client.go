// Package gemini calls the hosted interpretation model that turns
// free-form Vietnamese customer messages into structured order items.
package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	log "github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"

	"github.com/nhanban-huy/nhan-ban-photo-print/internal/metrics"
	"github.com/nhanban-huy/nhan-ban-photo-print/internal/usecase/interpret"
)

const defaultModel = "gemini-3-flash-preview"

type Client struct {
	http    *resty.Client
	breaker *gobreaker.CircuitBreaker
	apiKey  string
	model   string
}

func New(baseURL, apiKey string) *Client {
	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "gemini",
		MaxRequests: 3,
		Interval:    15 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= 3 && failureRatio >= 0.6
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			state := float64(0)
			switch to {
			case gobreaker.StateOpen:
				state = 1
			case gobreaker.StateHalfOpen:
				state = 2
			}
			metrics.CircuitBreakerState.WithLabelValues(name).Set(state)

			log.WithFields(log.Fields{
				"circuit": name,
				"from":    from.String(),
				"to":      to.String(),
			}).Info("circuit breaker state changed")
		},
	})

	return &Client{
		http: resty.New().
			SetBaseURL(baseURL).
			SetTimeout(20 * time.Second).
			SetRetryCount(0), // the breaker owns failure policy
		breaker: breaker,
		apiKey:  apiKey,
		model:   defaultModel,
	}
}

type generateRequest struct {
	Contents         []content        `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generationConfig struct {
	ResponseMimeType string          `json:"responseMimeType"`
	ResponseSchema   json.RawMessage `json:"responseSchema"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []part `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// itemSchema constrains the model output to the order-item array.
var itemSchema = json.RawMessage(`{
  "type": "ARRAY",
  "items": {
    "type": "OBJECT",
    "properties": {
      "service":   {"type": "STRING", "description": "Tên hàng hóa/dịch vụ"},
      "quantity":  {"type": "NUMBER", "description": "Số lượng"},
      "unitPrice": {"type": "NUMBER", "description": "Đơn giá (số)"},
      "note":      {"type": "STRING", "description": "Ghi chú thêm"}
    },
    "required": ["service", "quantity", "unitPrice"]
  }
}`)

// Parse implements interpret.Parser. Shorthand normalization happens
// inside the model, steered by the prompt rules and catalog context.
func (c *Client) Parse(ctx context.Context, text string, catalog []interpret.CatalogEntry) ([]interpret.Candidate, error) {
	body := generateRequest{
		Contents: []content{{Parts: []part{{Text: buildPrompt(text, catalog)}}}},
		GenerationConfig: generationConfig{
			ResponseMimeType: "application/json",
			ResponseSchema:   itemSchema,
		},
	}

	raw, err := c.breaker.Execute(func() (interface{}, error) {
		var out generateResponse
		resp, err := c.http.R().
			SetContext(ctx).
			SetQueryParam("key", c.apiKey).
			SetBody(body).
			SetResult(&out).
			Post(fmt.Sprintf("/v1beta/models/%s:generateContent", c.model))
		if err != nil {
			return nil, err
		}
		if resp.IsError() {
			return nil, fmt.Errorf("gemini: status %d", resp.StatusCode())
		}
		return &out, nil
	})
	if err != nil {
		return nil, err
	}

	out := raw.(*generateResponse)
	if len(out.Candidates) == 0 || len(out.Candidates[0].Content.Parts) == 0 {
		return nil, nil
	}

	var candidates []interpret.Candidate
	if err := json.Unmarshal([]byte(out.Candidates[0].Content.Parts[0].Text), &candidates); err != nil {
		return nil, fmt.Errorf("gemini: malformed item payload: %w", err)
	}
	return candidates, nil
}

func buildPrompt(text string, catalog []interpret.CatalogEntry) string {
	catalogContext := ""
	if len(catalog) > 0 {
		if b, err := json.Marshal(catalog); err == nil {
			catalogContext = "DANH MỤC DỊCH VỤ CỦA CỬA HÀNG (ƯU TIÊN): " + string(b)
		}
	}

	return fmt.Sprintf(`Bạn là trợ lý bán hàng chuyên nghiệp tại cửa hàng photocopy Nhân Bản.
Nhiệm vụ: Bóc tách đơn hàng từ lời nói hoặc tin nhắn của khách hàng Việt Nam.

%s

Nội dung khách nói: "%s"

QUY TẮC XỬ LÝ NGÔN NGỮ TIẾNG VIỆT:
1. Đơn vị tiền tệ:
   - "k", "ngàn", "nghìn" -> x1000
   - "lít", "xị" -> 100000, 10000
   - "chục" -> 10 (số lượng) hoặc 10000 (giá tiền)
2. Tên dịch vụ phổ biến:
   - "photo", "phô", "tô" -> Photocopy
   - "in", "ấn" -> In ấn
   - "đóng tập", "đóng gáy", "lò xo" -> Đóng sách
3. Tham chiếu danh mục dịch vụ bên trên để lấy đơn giá đúng nếu khách không nói giá.
4. Kết quả trả về là mảng JSON các đối tượng.`, catalogContext, text)
}
