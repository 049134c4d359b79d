package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func TestAllowEnforcesWindow(t *testing.T) {
	l := NewRequestLimiter(3, time.Minute)
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return now }

	for i := 0; i < 3; i++ {
		if !l.Allow("a") {
			t.Fatalf("request %d denied, want allowed", i+1)
		}
	}
	if l.Allow("a") {
		t.Error("fourth request allowed within window")
	}
	if !l.Allow("b") {
		t.Error("separate key throttled by key a")
	}

	now = now.Add(61 * time.Second)
	if !l.Allow("a") {
		t.Error("request denied after window expired")
	}
}

func TestThrottleOTPKeysByPhone(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/send-otp", ThrottleOTP(NewRequestLimiter(2, time.Hour)), func(c *gin.Context) {
		var body struct {
			Phone string `json:"phone" binding:"required"`
		}
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true})
	})

	send := func(phone string) int {
		req := httptest.NewRequest(http.MethodPost, "/send-otp", strings.NewReader(`{"phone":"`+phone+`"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w.Code
	}

	if send("+919876543210") != http.StatusOK || send("+919876543210") != http.StatusOK {
		t.Fatal("first two sends throttled")
	}
	if code := send("+919876543210"); code != http.StatusTooManyRequests {
		t.Errorf("third send = %d, want 429", code)
	}
	// Another phone is unaffected, and the body survives the peek.
	if code := send("+918888888888"); code != http.StatusOK {
		t.Errorf("other phone = %d, want 200", code)
	}
}
