package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/01moynul/fashionhub/internal/email"
	"github.com/01moynul/fashionhub/internal/models"
	"github.com/gin-gonic/gin"
)

const mailTimeout = 30 * time.Second

//
// --- Contact Form ---
//

// ContactInput defines the JSON input for the storefront contact form.
type ContactInput struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required,email"`
	Subject string `json:"subject"`
	Message string `json:"message" binding:"required"`
}

// SubmitContact is the handler for POST /api/contact
// The message is stored first; the emails go out in the background.
func (h *Handlers) SubmitContact(c *gin.Context) {
	var input ContactInput
	if err := c.ShouldBindJSON(&input); err != nil {
		fail(c, http.StatusBadRequest, "Name, a valid email and a message are required")
		return
	}

	msg := email.ContactEmail{
		Name:       sanitize(input.Name, 100),
		Email:      sanitize(input.Email, 100),
		Subject:    sanitize(input.Subject, 200),
		Message:    sanitize(input.Message, 5000),
		ReceivedAt: time.Now(),
	}
	if msg.Name == "" || msg.Message == "" {
		fail(c, http.StatusBadRequest, "Name, a valid email and a message are required")
		return
	}
	if msg.Subject == "" {
		msg.Subject = "Contact Form Submission"
	}

	result, err := h.DB.ExecContext(c.Request.Context(),
		"INSERT INTO contact_messages (name, email, subject, message) VALUES (?, ?, ?, ?)",
		msg.Name, msg.Email, msg.Subject, msg.Message)
	if err != nil {
		h.Log.Error().Err(err).Msg("save contact message")
		fail(c, http.StatusInternalServerError, "Failed to send message. Please try again later.")
		return
	}
	msg.MessageID, err = result.LastInsertId()
	if err != nil {
		h.Log.Error().Err(err).Msg("contact message id")
		fail(c, http.StatusInternalServerError, "Failed to send message. Please try again later.")
		return
	}

	h.goBackground(func() {
		ctx, cancel := context.WithTimeout(context.Background(), mailTimeout)
		defer cancel()
		if err := h.Mailer.SendContact(ctx, msg); err != nil {
			h.Log.Error().Err(err).Int64("message_id", msg.MessageID).Msg("contact email failed")
		}
	})

	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"message":     "Thank you for your message! We will get back to you soon.",
		"messageId":   msg.MessageID,
		"emailQueued": h.Mailer.Enabled(),
	})
}

//
// --- Admin: Contact Messages ---
//

// ListContactMessages is the handler for GET /api/admin/contact-messages?status=
func (h *Handlers) ListContactMessages(c *gin.Context) {
	query := "SELECT message_id, name, email, subject, message, status, created_at, replied_at FROM contact_messages"
	var args []interface{}
	if status := c.Query("status"); status != "" {
		query += " WHERE status = ?"
		args = append(args, status)
	}
	query += " ORDER BY created_at DESC, message_id DESC"

	rows, err := h.DB.QueryContext(c.Request.Context(), query, args...)
	if err != nil {
		h.Log.Error().Err(err).Msg("list contact messages")
		fail(c, http.StatusInternalServerError, "Failed to fetch messages")
		return
	}
	defer rows.Close()

	messages := []models.ContactMessage{}
	for rows.Next() {
		var m models.ContactMessage
		if err := rows.Scan(&m.ID, &m.Name, &m.Email, &m.Subject, &m.Message, &m.Status, &m.CreatedAt, &m.RepliedAt); err != nil {
			h.Log.Error().Err(err).Msg("scan contact message")
			fail(c, http.StatusInternalServerError, "Failed to fetch messages")
			return
		}
		messages = append(messages, m)
	}
	if err := rows.Err(); err != nil {
		h.Log.Error().Err(err).Msg("iterate contact messages")
		fail(c, http.StatusInternalServerError, "Failed to fetch messages")
		return
	}

	c.JSON(http.StatusOK, messages)
}

// UpdateContactStatusInput defines the JSON input for marking a message.
type UpdateContactStatusInput struct {
	Status string `json:"status" binding:"required,oneof=new read replied"`
}

// UpdateContactStatus is the handler for PUT /api/admin/contact-messages/:id/status
func (h *Handlers) UpdateContactStatus(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	var input UpdateContactStatusInput
	if err := c.ShouldBindJSON(&input); err != nil {
		fail(c, http.StatusBadRequest, "Status must be one of new, read, replied")
		return
	}

	var repliedAt interface{}
	if input.Status == models.ContactStatusReplied {
		repliedAt = time.Now().UTC()
	}

	result, err := h.DB.ExecContext(c.Request.Context(),
		"UPDATE contact_messages SET status = ?, replied_at = ? WHERE message_id = ?",
		input.Status, repliedAt, id)
	if err != nil {
		h.Log.Error().Err(err).Int64("message_id", id).Msg("update contact status")
		fail(c, http.StatusInternalServerError, "Failed to update message")
		return
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 &&
		!h.rowExists(c.Request.Context(), "SELECT 1 FROM contact_messages WHERE message_id = ?", id) {
		fail(c, http.StatusNotFound, "Message not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Message status updated"})
}

// SendTestEmail is the handler for POST /api/admin/test-email
func (h *Handlers) SendTestEmail(c *gin.Context) {
	if !h.Mailer.Enabled() {
		fail(c, http.StatusServiceUnavailable, "Email is not configured")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), mailTimeout)
	defer cancel()
	if err := h.Mailer.SendTest(ctx); err != nil {
		h.Log.Error().Err(err).Msg("test email failed")
		fail(c, http.StatusBadGateway, "Failed to send test email")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Test email sent"})
}
