package response

import (
	"encoding/json"
	"net/http"
	"testing"
)

func marshalToMap(t *testing.T, resp *Response) map[string]interface{} {
	t.Helper()
	raw, err := json.Marshal(resp)
	if err != nil {
		t.Fatalf("marshal response: %v", err)
	}
	var parsed map[string]interface{}
	if err := json.Unmarshal(raw, &parsed); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	return parsed
}

func TestSuccess_OmitsErrorAndMeta(t *testing.T) {
	parsed := marshalToMap(t, Success(map[string]string{"refund_id": "rf-1"}))

	if parsed["success"] != true {
		t.Errorf("success = %v, want true", parsed["success"])
	}
	data, ok := parsed["data"].(map[string]interface{})
	if !ok || data["refund_id"] != "rf-1" {
		t.Errorf("data = %v, want refund_id rf-1", parsed["data"])
	}
	for _, key := range []string{"error", "meta"} {
		if _, ok := parsed[key]; ok {
			t.Errorf("%s should be omitted on success", key)
		}
	}
}

func TestError_RefundFailed(t *testing.T) {
	resp := Error(ErrCodeRefundFailed, "stripe: card_declined")
	parsed := marshalToMap(t, resp)

	if parsed["success"] != false {
		t.Errorf("success = %v, want false", parsed["success"])
	}
	if _, ok := parsed["data"]; ok {
		t.Error("data should be omitted on error")
	}
	errorObj, ok := parsed["error"].(map[string]interface{})
	if !ok {
		t.Fatal("expected error object")
	}
	if errorObj["code"] != "REFUND_FAILED" {
		t.Errorf("code = %v, want REFUND_FAILED", errorObj["code"])
	}
	if errorObj["message"] != "stripe: card_declined" {
		t.Errorf("message = %v", errorObj["message"])
	}
	if _, ok := errorObj["details"]; ok {
		t.Error("details should be omitted when empty")
	}
}

func TestErrorWithDetails_ReadinessChecks(t *testing.T) {
	resp := ErrorWithDetails(ErrCodeServiceUnavailable, "Service not ready", map[string]string{
		"database": "ok",
		"redis":    "connection refused",
	})

	if resp.Success {
		t.Error("success should be false")
	}
	if resp.Error.Details["redis"] != "connection refused" {
		t.Errorf("details = %v", resp.Error.Details)
	}
	if got := GetHTTPStatus(resp.Error.Code); got != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want %d", got, http.StatusServiceUnavailable)
	}
}

func TestPaginated_ConsoleMeta(t *testing.T) {
	parsed := marshalToMap(t, Paginated([]string{"evt-1", "evt-2"}, 2, 20, 41))

	meta, ok := parsed["meta"].(map[string]interface{})
	if !ok {
		t.Fatal("expected meta object")
	}
	want := map[string]float64{"page": 2, "limit": 20, "total": 41, "pages": 3}
	for key, value := range want {
		if meta[key] != value {
			t.Errorf("meta.%s = %v, want %v", key, meta[key], value)
		}
	}
	if _, ok := meta["total_pages"]; ok {
		t.Error("meta should expose pages, not total_pages")
	}
	if items, ok := parsed["data"].([]interface{}); !ok || len(items) != 2 {
		t.Errorf("data = %v, want two items", parsed["data"])
	}
}

func TestNewMeta_Pages(t *testing.T) {
	tests := []struct {
		name  string
		total int64
		limit int
		pages int
	}{
		{"exact division", 40, 20, 2},
		{"partial last page", 41, 20, 3},
		{"fewer than a page", 5, 20, 1},
		{"no rows", 0, 20, 0},
		{"unlimited with rows", 7, 0, 1},
		{"unlimited without rows", 0, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NewMeta(1, tt.limit, tt.total).TotalPages; got != tt.pages {
				t.Errorf("pages = %d, want %d", got, tt.pages)
			}
		})
	}
}

func TestGetHTTPStatus_AdminCodes(t *testing.T) {
	tests := []struct {
		code string
		want int
	}{
		{ErrCodeRefundFailed, http.StatusBadGateway},
		{ErrCodeResourceInUse, http.StatusConflict},
		{ErrCodeDuplicateEntry, http.StatusConflict},
		{ErrCodeInvalidPricing, http.StatusBadRequest},
		{ErrCodeInvalidRole, http.StatusBadRequest},
		{ErrCodeInvalidStatus, http.StatusBadRequest},
		{ErrCodeValidationFailed, http.StatusBadRequest},
		{ErrCodePayloadTooLarge, http.StatusRequestEntityTooLarge},
		{ErrCodeTooManyRequests, http.StatusTooManyRequests},
		{ErrCodeForbidden, http.StatusForbidden},
		{"EVENT_HAS_BOOKINGS", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			if got := GetHTTPStatus(tt.code); got != tt.want {
				t.Errorf("GetHTTPStatus(%s) = %d, want %d", tt.code, got, tt.want)
			}
		})
	}
}

func TestErrorBuilders_DefaultMessages(t *testing.T) {
	tests := []struct {
		name string
		resp *Response
		code string
	}{
		{"BadRequest", BadRequest("Invalid request body"), ErrCodeBadRequest},
		{"Unauthorized", Unauthorized(""), ErrCodeUnauthorized},
		{"Forbidden", Forbidden(""), ErrCodeForbidden},
		{"InternalError", InternalError(""), ErrCodeInternalError},
		{"TooManyRequests", TooManyRequests(""), ErrCodeTooManyRequests},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.resp.Success {
				t.Error("success should be false")
			}
			if tt.resp.Error.Code != tt.code {
				t.Errorf("code = %s, want %s", tt.resp.Error.Code, tt.code)
			}
			if tt.resp.Error.Message == "" {
				t.Error("message should fall back to a default")
			}
		})
	}
}
