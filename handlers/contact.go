package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type ContactRequest struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required,email"`
	Subject string `json:"subject" binding:"required"`
	Message string `json:"message" binding:"required"`
}

// Contact relays a contact-form submission to the configured admin
// address. Submissions are not persisted.
func Contact(c *gin.Context) {
	var req ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Name, email, subject and message are required"})
		return
	}

	subject := fmt.Sprintf("[Contact] %s", req.Subject)
	body := strings.Join([]string{
		"Name: " + req.Name,
		"Email: " + req.Email,
		"",
		"Message:",
		req.Message,
	}, "\n")

	if err := mailer.Send(cfg.SMTP.AdminEmail, subject, body); err != nil {
		zap.L().Error("contact mail failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to send message"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Message sent successfully"})
}
