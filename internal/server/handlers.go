package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"regexp"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/minecash/discord-bot/internal/models"
	"github.com/minecash/discord-bot/internal/service"
	"github.com/minecash/discord-bot/utils"
)

// TicketService is the slice of the workflow layer the HTTP façade exposes to
// the website.
type TicketService interface {
	IsMember(ctx context.Context, discordID string) bool
	OpenTicket(ctx context.Context, req service.OpenTicketRequest) (*service.TicketChannel, error)
}

type Handler struct {
	svc    TicketService
	logger *utils.Logger
}

func NewHandler(svc TicketService, logger *utils.Logger) *Handler {
	return &Handler{svc: svc, logger: logger}
}

// Discord IDs are 17-19 digit snowflakes.
var userIDPattern = regexp.MustCompile(`^\d{17,19}$`)

type checkUserRequest struct {
	UserID string `json:"userId"`
}

type createTicketRequest struct {
	UserID      string          `json:"userId"`
	Type        string          `json:"type"`
	Amount      json.RawMessage `json:"amount"`
	Description string          `json:"description"`
}

func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Discord bot server is running"})
}

func (h *Handler) CheckUser(c *gin.Context) {
	var req checkUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		failJSON(c, http.StatusBadRequest, "User ID required")
		return
	}

	userID := strings.TrimSpace(req.UserID)
	if userID == "" {
		failJSON(c, http.StatusBadRequest, "User ID required")
		return
	}
	if !userIDPattern.MatchString(userID) {
		failJSON(c, http.StatusBadRequest, "Invalid user ID format")
		return
	}

	inServer := h.svc.IsMember(c.Request.Context(), userID)

	message := "User is not in server"
	if inServer {
		message = "User is in server"
	}
	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"inServer": inServer,
		"message":  message,
	})
}

func (h *Handler) CreateTicket(c *gin.Context) {
	var req createTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		failJSON(c, http.StatusBadRequest, "User ID and type required")
		return
	}

	userID := strings.TrimSpace(req.UserID)
	ticketType := models.TicketType(strings.ToLower(strings.TrimSpace(req.Type)))
	description := strings.TrimSpace(req.Description)
	amount := coerceAmount(req.Amount)

	if userID == "" || ticketType == "" {
		failJSON(c, http.StatusBadRequest, "User ID and type required")
		return
	}
	if !userIDPattern.MatchString(userID) {
		failJSON(c, http.StatusBadRequest, "Invalid user ID format")
		return
	}
	if !ticketType.Valid() {
		failJSON(c, http.StatusBadRequest, "Invalid ticket type")
		return
	}
	if ticketType.Monetary() {
		if amount == nil || *amount < service.DefaultMinAmount || *amount > service.DefaultMaxAmount {
			failJSON(c, http.StatusBadRequest, "Amount must be between 50 and 500 GC")
			return
		}
	}

	result, err := h.svc.OpenTicket(c.Request.Context(), service.OpenTicketRequest{
		DiscordID:   userID,
		Type:        ticketType,
		Amount:      amount,
		Description: description,
	})
	if err != nil {
		if isValidationError(err) {
			failJSON(c, http.StatusBadRequest, err.Error())
			return
		}
		h.logger.Errorf("Error creating ticket: %v", err)
		failJSON(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Ticket created successfully: " + result.ChannelName,
		"data": gin.H{
			"channelId":   result.ChannelID,
			"channelName": result.ChannelName,
		},
	})
}

// isValidationError reports whether the failure is user-correctable and safe
// to echo back as the reason string.
func isValidationError(err error) bool {
	return errors.Is(err, service.ErrInvalidTicketType) ||
		errors.Is(err, service.ErrAmountOutOfRange) ||
		errors.Is(err, service.ErrNotAMember) ||
		errors.Is(err, service.ErrUserNotFound) ||
		errors.Is(err, service.ErrDuplicateOpenTicket)
}

// coerceAmount accepts both JSON numbers and numeric strings, mirroring the
// website payloads. Anything else is treated as absent.
func coerceAmount(raw json.RawMessage) *float64 {
	if len(raw) == 0 {
		return nil
	}
	s := strings.TrimSpace(string(raw))
	s = strings.Trim(s, `"`)
	if s == "" || s == "null" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &v
}

func failJSON(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, gin.H{"success": false, "error": msg})
}
