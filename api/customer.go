package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/clinidesk/clinidesk-BE/internal/db"
	"github.com/clinidesk/clinidesk-BE/internal/notification"
	"github.com/clinidesk/clinidesk-BE/internal/validator"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

type createCustomerRequest struct {
	FullName string `json:"full_name"`
	Phone    string `json:"phone"`
	Email    string `json:"email"`
	// Source is the marketing channel the lead came from.
	Source string `json:"source"`
	// RegistrationDate defaults to the moment of creation when omitted.
	RegistrationDate *time.Time `json:"registration_date"`
}

func validateCreateCustomerRequest(req *createCustomerRequest) (violations []*FieldViolation) {
	if err := validator.ValidateFullName(req.FullName); err != nil {
		violations = append(violations, fieldViolation("full_name", err))
	}

	if req.Email != "" {
		if err := validator.ValidateEmail(req.Email); err != nil {
			violations = append(violations, fieldViolation("email", err))
		}
	}

	if err := validator.ValidatePhoneNumber(req.Phone); err != nil {
		violations = append(violations, fieldViolation("phone", err))
	}

	return violations
}

func (server *Server) createCustomer(ctx *gin.Context) {
	req := new(createCustomerRequest)

	if err := ctx.ShouldBindJSON(req); err != nil {
		ctx.JSON(http.StatusBadRequest, errorResponse(err))
		return
	}

	violations := validateCreateCustomerRequest(req)
	if violations != nil {
		ctx.JSON(http.StatusUnprocessableEntity, failedValidationError(violations))
		return
	}

	registrationDate := req.RegistrationDate
	if registrationDate == nil {
		now := time.Now()
		registrationDate = &now
	}

	arg := db.CreateCustomerParams{
		FullName:         req.FullName,
		Phone:            req.Phone,
		Email:            req.Email,
		Status:           db.CustomerStatusNew,
		Source:           req.Source,
		RegistrationDate: registrationDate,
	}

	customer, err := server.dbStore.CreateCustomer(ctx, arg)
	if err != nil {
		log.Err(err).Msg("failed to create customer")
		ctx.JSON(http.StatusInternalServerError, errorResponse(ErrInternalServer))
		return
	}

	// Let the console know a lead arrived.
	server.center.Add(ctx, notification.Notification{
		Title:    "New lead",
		Message:  fmt.Sprintf("%s just arrived via %s", customer.FullName, displaySource(customer.Source)),
		Type:     notification.TypeNewLead,
		Priority: notification.PriorityMedium,
		DedupKey: notification.NewLeadKey(customer.ID),
		Link:     fmt.Sprintf("/customers/%s", customer.ID),
	})

	ctx.JSON(http.StatusCreated, customer)
}

func displaySource(source string) string {
	if source == "" {
		return "direct entry"
	}
	return source
}

func (server *Server) getCustomer(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, errorResponse(fmt.Errorf("invalid customer ID format")))
		return
	}

	customer, err := server.dbStore.GetCustomerByID(ctx, id)
	if err != nil {
		if errors.Is(err, db.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, errorResponse(ErrCustomerNotFound))
			return
		}

		log.Err(err).Msg("failed to get customer")
		ctx.JSON(http.StatusInternalServerError, errorResponse(ErrInternalServer))
		return
	}

	ctx.JSON(http.StatusOK, customer)
}

func (server *Server) listCustomers(ctx *gin.Context) {
	page, err := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		ctx.JSON(http.StatusBadRequest, errorResponse(fmt.Errorf("invalid page number")))
		return
	}

	pageSize, err := strconv.Atoi(ctx.DefaultQuery("page_size", "20"))
	if err != nil || pageSize < 1 || pageSize > 100 {
		ctx.JSON(http.StatusBadRequest, errorResponse(fmt.Errorf("invalid page size")))
		return
	}

	arg := db.ListCustomersParams{
		Limit:  int32(pageSize),
		Offset: int32((page - 1) * pageSize),
	}

	if statusParam := ctx.Query("status"); statusParam != "" {
		status := db.CustomerStatus(statusParam)
		if !status.Valid() {
			ctx.JSON(http.StatusBadRequest, errorResponse(fmt.Errorf("invalid customer status %q", statusParam)))
			return
		}
		arg.Status = &status
	}

	customers, err := server.dbStore.ListCustomers(ctx, arg)
	if err != nil {
		log.Err(err).Msg("failed to list customers")
		ctx.JSON(http.StatusInternalServerError, errorResponse(ErrInternalServer))
		return
	}

	ctx.JSON(http.StatusOK, customers)
}

type updateCustomerStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

func (server *Server) updateCustomerStatus(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, errorResponse(fmt.Errorf("invalid customer ID format")))
		return
	}

	req := new(updateCustomerStatusRequest)
	if err = ctx.ShouldBindJSON(req); err != nil {
		ctx.JSON(http.StatusBadRequest, errorResponse(err))
		return
	}

	status := db.CustomerStatus(req.Status)
	if !status.Valid() {
		ctx.JSON(http.StatusBadRequest, errorResponse(fmt.Errorf("invalid customer status %q", req.Status)))
		return
	}

	customer, err := server.dbStore.UpdateCustomerStatus(ctx, db.UpdateCustomerStatusParams{
		ID:     id,
		Status: status,
	})
	if err != nil {
		if errors.Is(err, db.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, errorResponse(ErrCustomerNotFound))
			return
		}

		log.Err(err).Msg("failed to update customer status")
		ctx.JSON(http.StatusInternalServerError, errorResponse(ErrInternalServer))
		return
	}

	ctx.JSON(http.StatusOK, customer)
}

type createReminderNoteRequest struct {
	Content  string     `json:"content" binding:"required"`
	RemindAt *time.Time `json:"remind_at"`
}

func (server *Server) createReminderNote(ctx *gin.Context) {
	customerID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, errorResponse(fmt.Errorf("invalid customer ID format")))
		return
	}

	req := new(createReminderNoteRequest)
	if err = ctx.ShouldBindJSON(req); err != nil {
		ctx.JSON(http.StatusBadRequest, errorResponse(err))
		return
	}

	if req.RemindAt != nil {
		if err = validator.ValidateReminderTime(*req.RemindAt, time.Now()); err != nil {
			ctx.JSON(http.StatusUnprocessableEntity, failedValidationError([]*FieldViolation{
				fieldViolation("remind_at", err),
			}))
			return
		}
	}

	// Make sure the customer exists before attaching the note.
	if _, err = server.dbStore.GetCustomerByID(ctx, customerID); err != nil {
		if errors.Is(err, db.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, errorResponse(ErrCustomerNotFound))
			return
		}

		log.Err(err).Msg("failed to get customer")
		ctx.JSON(http.StatusInternalServerError, errorResponse(ErrInternalServer))
		return
	}

	note, err := server.dbStore.CreateReminderNote(ctx, db.CreateReminderNoteParams{
		CustomerID: customerID,
		Content:    req.Content,
		RemindAt:   req.RemindAt,
	})
	if err != nil {
		log.Err(err).Msg("failed to create reminder note")
		ctx.JSON(http.StatusInternalServerError, errorResponse(ErrInternalServer))
		return
	}

	ctx.JSON(http.StatusCreated, note)
}

func (server *Server) listReminderNotes(ctx *gin.Context) {
	customerID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, errorResponse(fmt.Errorf("invalid customer ID format")))
		return
	}

	notes, err := server.dbStore.ListReminderNotesByCustomer(ctx, customerID)
	if err != nil {
		log.Err(err).Msg("failed to list reminder notes")
		ctx.JSON(http.StatusInternalServerError, errorResponse(ErrInternalServer))
		return
	}

	ctx.JSON(http.StatusOK, notes)
}

func (server *Server) completeReminderNote(ctx *gin.Context) {
	customerID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, errorResponse(fmt.Errorf("invalid customer ID format")))
		return
	}

	noteID, err := uuid.Parse(ctx.Param("noteID"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, errorResponse(fmt.Errorf("invalid reminder note ID format")))
		return
	}

	note, err := server.dbStore.CompleteReminderNote(ctx, db.CompleteReminderNoteParams{
		ID:         noteID,
		CustomerID: customerID,
	})
	if err != nil {
		if errors.Is(err, db.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, errorResponse(ErrReminderNoteNotFound))
			return
		}

		log.Err(err).Msg("failed to complete reminder note")
		ctx.JSON(http.StatusInternalServerError, errorResponse(ErrInternalServer))
		return
	}

	ctx.JSON(http.StatusOK, note)
}
