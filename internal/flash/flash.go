// Package flash carries one-shot notifications across a redirect.
package flash

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
)

const (
	cookieName = "flash"
	secureKey  = "flash.secure"
)

// Secure marks the flash cookies of every request as Secure when secure is
// set. Without it the cookies are sent over plain HTTP too.
func Secure(secure bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(secureKey, secure)
		c.Next()
	}
}

type Kind string

const (
	Success Kind = "success"
	Error   Kind = "error"
)

type Message struct {
	Kind Kind   `json:"kind"`
	Text string `json:"text"`
}

func set(c *gin.Context, m Message) {
	payload, err := json.Marshal(m)
	if err != nil {
		return
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(cookieName, string(payload), 60, "/", "", c.GetBool(secureKey), true)
}

func SetSuccess(c *gin.Context, text string) { set(c, Message{Kind: Success, Text: text}) }
func SetError(c *gin.Context, text string)   { set(c, Message{Kind: Error, Text: text}) }

// Pop returns the pending message, if any, and deletes it.
func Pop(c *gin.Context) *Message {
	raw, err := c.Cookie(cookieName)
	if err != nil || raw == "" {
		return nil
	}
	c.SetCookie(cookieName, "", -1, "/", "", c.GetBool(secureKey), true)

	var m Message
	if err := json.Unmarshal([]byte(raw), &m); err != nil || m.Text == "" {
		return nil
	}
	return &m
}
