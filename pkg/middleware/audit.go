package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/beout/beout-admin/pkg/logger"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Context keys for audit data
const (
	ContextKeyAuditTargetType  = "audit_target_type"
	ContextKeyAuditTargetID    = "audit_target_id"
	ContextKeyAuditDescription = "audit_description"
	ContextKeyAuditOldValues   = "audit_old_values"
	ContextKeyAuditNewValues   = "audit_new_values"
	ContextKeyAuditMetadata    = "audit_metadata"
	contextKeyAuditSkip        = "audit_skip"
	contextKeyRequestID        = "request_id"
)

// AuditEntry is one admin action captured from an HTTP request
type AuditEntry struct {
	ID          string                 `json:"id"`
	AdminUserID string                 `json:"admin_user_id"`
	AdminEmail  string                 `json:"admin_email,omitempty"`
	AdminRole   string                 `json:"admin_role,omitempty"`
	ActionType  string                 `json:"action_type"`
	TargetType  string                 `json:"target_type"`
	TargetID    string                 `json:"target_id,omitempty"`
	Description string                 `json:"description,omitempty"`
	IPAddress   string                 `json:"ip_address,omitempty"`
	UserAgent   string                 `json:"user_agent,omitempty"`
	RequestID   string                 `json:"request_id,omitempty"`
	Metadata    map[string]interface{} `json:"metadata,omitempty"`
	CreatedAt   time.Time              `json:"created_at"`
}

// AuditSink persists batches of audit entries
type AuditSink interface {
	WriteAuditEntries(ctx context.Context, entries []*AuditEntry) error
}

// AuditConfig holds configuration for the audit middleware
type AuditConfig struct {
	// Sink receives flushed batches; nil drops entries
	Sink AuditSink
	// BufferSize is the size of the async audit buffer (default: 1000)
	BufferSize int
	// FlushInterval is how often to flush the buffer (default: 5 seconds)
	FlushInterval time.Duration
	// BatchSize is the maximum number of entries to write in one batch (default: 100)
	BatchSize int
	// SkipPaths is a list of paths to skip auditing
	SkipPaths []string
	// SkipMethods is a list of HTTP methods to skip (default: GET, HEAD, OPTIONS)
	SkipMethods []string
	// ActionMapper maps HTTP method + path to an admin action type
	ActionMapper func(method, path string) string
	// TargetExtractor extracts target type and ID from path
	TargetExtractor func(path string) (targetType string, targetID string)
	// EnableRequestBody captures the (masked) request body into metadata
	EnableRequestBody bool
	// MaxBodySize limits the size of captured body (default: 10KB)
	MaxBodySize int
	// SensitiveFields are field names that should be masked
	SensitiveFields []string
}

// DefaultAuditConfig returns default configuration
func DefaultAuditConfig(sink AuditSink) *AuditConfig {
	return &AuditConfig{
		Sink:              sink,
		BufferSize:        1000,
		FlushInterval:     5 * time.Second,
		BatchSize:         100,
		SkipPaths:         []string{"/health", "/ready", "/auth/login"},
		SkipMethods:       []string{"GET", "HEAD", "OPTIONS"},
		ActionMapper:      defaultActionMapper,
		TargetExtractor:   defaultTargetExtractor,
		EnableRequestBody: true,
		MaxBodySize:       10 * 1024,
		SensitiveFields:   []string{"password", "token", "secret", "api_key", "card"},
	}
}

// AuditLogger handles async audit logging
type AuditLogger struct {
	config    *AuditConfig
	buffer    chan *AuditEntry
	wg        sync.WaitGroup
	ctx       context.Context
	cancel    context.CancelFunc
	closeOnce sync.Once

	// For testing: collect entries instead of writing to the sink
	testMode    bool
	testEntries []*AuditEntry
	testMu      sync.Mutex
}

// NewAuditLogger creates a new audit logger
func NewAuditLogger(config *AuditConfig) *AuditLogger {
	if config.BufferSize <= 0 {
		config.BufferSize = 1000
	}
	if config.FlushInterval <= 0 {
		config.FlushInterval = 5 * time.Second
	}
	if config.BatchSize <= 0 {
		config.BatchSize = 100
	}
	if config.MaxBodySize <= 0 {
		config.MaxBodySize = 10 * 1024
	}

	ctx, cancel := context.WithCancel(context.Background())

	al := &AuditLogger{
		config: config,
		buffer: make(chan *AuditEntry, config.BufferSize),
		ctx:    ctx,
		cancel: cancel,
	}

	al.wg.Add(1)
	go al.worker()

	return al
}

// Log adds an audit entry to the buffer (non-blocking)
func (al *AuditLogger) Log(entry *AuditEntry) {
	select {
	case al.buffer <- entry:
	default:
		logger.Warn("audit buffer full, dropping entry",
			zap.String("action_type", entry.ActionType),
			zap.String("admin_user_id", entry.AdminUserID),
		)
	}
}

// Close flushes pending entries and stops the worker
func (al *AuditLogger) Close() error {
	al.closeOnce.Do(func() {
		close(al.buffer)
		al.wg.Wait()
		al.cancel()
	})
	return nil
}

// SetTestMode enables test mode which collects entries instead of writing to the sink
func (al *AuditLogger) SetTestMode(enabled bool) {
	al.testMu.Lock()
	defer al.testMu.Unlock()
	al.testMode = enabled
	if enabled {
		al.testEntries = make([]*AuditEntry, 0)
	}
}

// GetTestEntries returns collected test entries (only in test mode)
func (al *AuditLogger) GetTestEntries() []*AuditEntry {
	al.testMu.Lock()
	defer al.testMu.Unlock()
	result := make([]*AuditEntry, len(al.testEntries))
	copy(result, al.testEntries)
	return result
}

// ClearTestEntries clears collected test entries
func (al *AuditLogger) ClearTestEntries() {
	al.testMu.Lock()
	defer al.testMu.Unlock()
	al.testEntries = make([]*AuditEntry, 0)
}

// worker processes audit entries in the background
func (al *AuditLogger) worker() {
	defer al.wg.Done()

	ticker := time.NewTicker(al.config.FlushInterval)
	defer ticker.Stop()

	batch := make([]*AuditEntry, 0, al.config.BatchSize)

	for {
		select {
		case entry, ok := <-al.buffer:
			if !ok {
				if len(batch) > 0 {
					al.flush(batch)
				}
				return
			}
			batch = append(batch, entry)
			if len(batch) >= al.config.BatchSize {
				al.flush(batch)
				batch = make([]*AuditEntry, 0, al.config.BatchSize)
			}
		case <-ticker.C:
			if len(batch) > 0 {
				al.flush(batch)
				batch = make([]*AuditEntry, 0, al.config.BatchSize)
			}
		}
	}
}

// flush writes a batch of entries to the sink
func (al *AuditLogger) flush(entries []*AuditEntry) {
	if len(entries) == 0 {
		return
	}

	al.testMu.Lock()
	if al.testMode {
		al.testEntries = append(al.testEntries, entries...)
		al.testMu.Unlock()
		return
	}
	al.testMu.Unlock()

	if al.config.Sink == nil {
		return
	}

	ctx, cancel := context.WithTimeout(al.ctx, 30*time.Second)
	defer cancel()

	// Audit failures must not affect request handling.
	if err := al.config.Sink.WriteAuditEntries(ctx, entries); err != nil {
		logger.Error("failed to write admin audit entries",
			zap.Int("count", len(entries)),
			zap.Error(err),
		)
	}
}

// AuditMiddleware creates a new audit logging middleware
func AuditMiddleware(al *AuditLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		config := al.config

		for _, path := range config.SkipPaths {
			if matchPath(c.Request.URL.Path, path) {
				c.Next()
				return
			}
		}

		for _, method := range config.SkipMethods {
			if c.Request.Method == method {
				c.Next()
				return
			}
		}

		var requestBody map[string]interface{}
		if config.EnableRequestBody && c.Request.Body != nil && isJSONRequest(c.Request) {
			bodyBytes, err := io.ReadAll(io.LimitReader(c.Request.Body, int64(config.MaxBodySize)))
			if err == nil && len(bodyBytes) > 0 {
				c.Request.Body = io.NopCloser(io.MultiReader(bytes.NewReader(bodyBytes), c.Request.Body))
				_ = json.Unmarshal(bodyBytes, &requestBody)
				requestBody = maskSensitiveFields(requestBody, config.SensitiveFields)
			}
		}

		startTime := time.Now()

		c.Next()

		if skip, exists := c.Get(contextKeyAuditSkip); exists {
			if b, ok := skip.(bool); ok && b {
				return
			}
		}

		// Only successful mutations are admin actions.
		status := c.Writer.Status()
		if status >= http.StatusBadRequest {
			return
		}

		adminID, ok := GetUserID(c)
		if !ok || adminID == "" {
			return
		}

		entry := &AuditEntry{
			ID:          uuid.New().String(),
			AdminUserID: adminID,
			CreatedAt:   startTime,
			Metadata: map[string]interface{}{
				"method": c.Request.Method,
				"path":   c.Request.URL.Path,
				"status": status,
			},
		}
		entry.AdminEmail, _ = GetEmail(c)
		entry.AdminRole, _ = GetRole(c)

		if config.ActionMapper != nil {
			entry.ActionType = config.ActionMapper(c.Request.Method, c.Request.URL.Path)
		}
		if config.TargetExtractor != nil {
			entry.TargetType, entry.TargetID = config.TargetExtractor(c.Request.URL.Path)
		}

		// Handler-provided values win over path-derived ones
		if v, exists := c.Get(ContextKeyAuditTargetType); exists {
			if s, ok := v.(string); ok && s != "" {
				entry.TargetType = s
			}
		}
		if v, exists := c.Get(ContextKeyAuditTargetID); exists {
			if s, ok := v.(string); ok && s != "" {
				entry.TargetID = s
			}
		}
		if v, exists := c.Get(ContextKeyAuditDescription); exists {
			if s, ok := v.(string); ok {
				entry.Description = s
			}
		}
		if meta, exists := c.Get(ContextKeyAuditMetadata); exists {
			if m, ok := meta.(map[string]interface{}); ok {
				for k, v := range m {
					entry.Metadata[k] = v
				}
			}
		}

		oldVals, _ := c.Get(ContextKeyAuditOldValues)
		newVals, _ := c.Get(ContextKeyAuditNewValues)
		oldMap, _ := oldVals.(map[string]interface{})
		newMap, _ := newVals.(map[string]interface{})
		if oldMap != nil && newMap != nil {
			entry.Metadata["changes"] = computeChanges(oldMap, newMap)
		} else if requestBody != nil {
			entry.Metadata["request"] = requestBody
		}

		if entry.Description == "" {
			entry.Description = strings.TrimSpace(c.Request.Method + " " + c.Request.URL.Path)
		}

		entry.IPAddress = getClientIP(c)
		entry.UserAgent = c.GetHeader("User-Agent")
		entry.RequestID = c.GetHeader("X-Request-ID")
		if entry.RequestID == "" {
			if reqID, exists := c.Get(contextKeyRequestID); exists {
				entry.RequestID, _ = reqID.(string)
			}
		}

		al.Log(entry)
	}
}

func isJSONRequest(r *http.Request) bool {
	return strings.HasPrefix(r.Header.Get("Content-Type"), "application/json")
}

// matchPath reports whether path equals pattern or sits under a pattern ending in /*
func matchPath(path, pattern string) bool {
	if strings.HasSuffix(pattern, "/*") {
		return strings.HasPrefix(path, strings.TrimSuffix(pattern, "*"))
	}
	return path == pattern
}

// defaultActionMapper maps a request to an action type such as "update_category"
func defaultActionMapper(method, path string) string {
	targetType, _ := defaultTargetExtractor(path)
	lower := strings.ToLower(path)

	var verb string
	switch {
	case strings.HasSuffix(lower, "/refund"):
		return "refund_payment"
	case strings.HasSuffix(lower, "/bulk-send"):
		return "bulk_send_email"
	case strings.HasSuffix(lower, "/test"):
		verb = "test"
	case strings.HasSuffix(lower, "/upload"):
		verb = "upload"
	case strings.HasSuffix(lower, "/status"):
		return "update_" + targetType + "_status"
	case strings.HasSuffix(lower, "/role"):
		return "update_" + targetType + "_role"
	case method == http.MethodPost:
		verb = "create"
	case method == http.MethodPut, method == http.MethodPatch:
		verb = "update"
	case method == http.MethodDelete:
		verb = "delete"
	default:
		verb = "view"
	}

	return verb + "_" + targetType
}

// defaultTargetExtractor extracts target type and ID from an admin path.
// Example: /api/admin/categories/12 -> ("category", "12")
func defaultTargetExtractor(path string) (targetType string, targetID string) {
	parts := strings.Split(strings.Trim(path, "/"), "/")

	startIdx := -1
loop:
	for i, part := range parts {
		switch part {
		case "api", "admin", "payments", "v1":
			continue
		}
		startIdx = i
		break loop
	}

	if startIdx < 0 || startIdx >= len(parts) {
		return "unknown", ""
	}

	resource := parts[startIdx]
	// "emails/templates/3" targets the template, not the group
	if resource == "emails" && startIdx+1 < len(parts) {
		startIdx++
		resource = strings.TrimSuffix(parts[startIdx-1], "s") + "_" + parts[startIdx]
	}

	targetType = singular(strings.ReplaceAll(resource, "-", "_"))

	if startIdx+1 < len(parts) && isValidID(parts[startIdx+1]) {
		targetID = parts[startIdx+1]
	}

	return targetType, targetID
}

func singular(s string) string {
	switch {
	case strings.HasSuffix(s, "ies"):
		return strings.TrimSuffix(s, "ies") + "y"
	case strings.HasSuffix(s, "s"):
		return strings.TrimSuffix(s, "s")
	}
	return s
}

// isValidID checks if a string looks like a valid ID
func isValidID(s string) bool {
	if _, err := uuid.Parse(s); err == nil {
		return true
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return len(s) > 0
}

// getClientIP extracts the client IP address
func getClientIP(c *gin.Context) string {
	xff := c.GetHeader("X-Forwarded-For")
	if xff != "" {
		ips := strings.Split(xff, ",")
		if len(ips) > 0 {
			return strings.TrimSpace(ips[0])
		}
	}

	xri := c.GetHeader("X-Real-IP")
	if xri != "" {
		return xri
	}

	ip, _, err := net.SplitHostPort(c.Request.RemoteAddr)
	if err != nil {
		return c.Request.RemoteAddr
	}
	return ip
}

// maskSensitiveFields masks sensitive data in a map
func maskSensitiveFields(data map[string]interface{}, sensitiveFields []string) map[string]interface{} {
	if data == nil {
		return nil
	}

	result := make(map[string]interface{})
	for k, v := range data {
		lowKey := strings.ToLower(k)
		masked := false
		for _, sf := range sensitiveFields {
			if strings.Contains(lowKey, strings.ToLower(sf)) {
				result[k] = "[REDACTED]"
				masked = true
				break
			}
		}
		if !masked {
			if nested, ok := v.(map[string]interface{}); ok {
				result[k] = maskSensitiveFields(nested, sensitiveFields)
			} else {
				result[k] = v
			}
		}
	}
	return result
}

// computeChanges computes the differences between old and new values
func computeChanges(oldVals, newVals map[string]interface{}) map[string]interface{} {
	changes := make(map[string]interface{})

	for k, newV := range newVals {
		if oldV, exists := oldVals[k]; exists {
			if !jsonEqual(oldV, newV) {
				changes[k] = map[string]interface{}{
					"old": oldV,
					"new": newV,
				}
			}
		} else {
			changes[k] = map[string]interface{}{
				"old": nil,
				"new": newV,
			}
		}
	}

	for k, oldV := range oldVals {
		if _, exists := newVals[k]; !exists {
			changes[k] = map[string]interface{}{
				"old": oldV,
				"new": nil,
			}
		}
	}

	return changes
}

// jsonEqual compares two values for JSON equality
func jsonEqual(a, b interface{}) bool {
	aJSON, err1 := json.Marshal(a)
	bJSON, err2 := json.Marshal(b)
	if err1 != nil || err2 != nil {
		return false
	}
	return string(aJSON) == string(bJSON)
}

// Helper functions for handlers to set audit context

// SetAuditTarget sets the target type and ID for audit logging
func SetAuditTarget(c *gin.Context, targetType, targetID string) {
	c.Set(ContextKeyAuditTargetType, targetType)
	c.Set(ContextKeyAuditTargetID, targetID)
}

// SetAuditDescription sets a human readable description for the action
func SetAuditDescription(c *gin.Context, description string) {
	c.Set(ContextKeyAuditDescription, description)
}

// SetAuditOldValues sets the old values for audit logging (before update/delete)
func SetAuditOldValues(c *gin.Context, oldValues map[string]interface{}) {
	c.Set(ContextKeyAuditOldValues, oldValues)
}

// SetAuditNewValues sets the new values for audit logging (after create/update)
func SetAuditNewValues(c *gin.Context, newValues map[string]interface{}) {
	c.Set(ContextKeyAuditNewValues, newValues)
}

// SetAuditMetadata sets additional metadata for audit logging
func SetAuditMetadata(c *gin.Context, metadata map[string]interface{}) {
	c.Set(ContextKeyAuditMetadata, metadata)
}

// SkipAudit marks the current request to skip audit logging.
// Used by handlers whose service already records the action transactionally.
func SkipAudit(c *gin.Context) {
	c.Set(contextKeyAuditSkip, true)
}
