package handlers

import (
	"errors"

	"libralend/internal/core/domain"
	"libralend/internal/core/services"
	"libralend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// LendingHandler handles the lending transaction endpoints
type LendingHandler struct {
	lendingService *services.LendingService
	overdueService *services.OverdueService
}

// NewLendingHandler creates a new lending handler
func NewLendingHandler(lendingService *services.LendingService, overdueService *services.OverdueService) *LendingHandler {
	return &LendingHandler{
		lendingService: lendingService,
		overdueService: overdueService,
	}
}

// MemberRequest carries the member a transaction acts for
type MemberRequest struct {
	MemberID string `json:"member_id" validate:"required"`
}

// Issue lends a copy to a member
// @Summary Issue copy
// @Tags Lending
// @Security BearerAuth
// @Router /books/:isbn/copies/:number/issue [post]
func (h *LendingHandler) Issue(c *fiber.Ctx) error {
	key, req, ok := h.parseTransaction(c)
	if !ok {
		return nil
	}

	record, err := h.lendingService.IssueCopy(key, req.MemberID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			return response.NotFound(c, err.Error())
		case errors.Is(err, domain.ErrMembershipExpired):
			return response.Forbidden(c, "Membership has expired")
		case errors.Is(err, domain.ErrIssuanceLimit):
			return response.Conflict(c, "Member has reached the issuance limit")
		case errors.Is(err, domain.ErrCopyAlreadyIssued):
			return response.Conflict(c, "Copy is already issued out")
		default:
			return response.InternalServerError(c, "Failed to issue copy")
		}
	}

	return response.Created(c, "Copy issued successfully", record)
}

// Return takes a copy back and reports any fine
// @Summary Return copy
// @Tags Lending
// @Security BearerAuth
// @Router /books/:isbn/copies/:number/return [post]
func (h *LendingHandler) Return(c *fiber.Ctx) error {
	key, req, ok := h.parseTransaction(c)
	if !ok {
		return nil
	}

	record, err := h.lendingService.ReturnCopy(key, req.MemberID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			return response.NotFound(c, err.Error())
		case errors.Is(err, domain.ErrMembershipExpired):
			return response.Forbidden(c, "Membership has expired")
		case errors.Is(err, domain.ErrNotIssuedByMember):
			return response.Conflict(c, "Copy is not issued to this member")
		case errors.Is(err, domain.ErrCopyNotIssued):
			return response.Conflict(c, "Copy is not issued out")
		default:
			return response.InternalServerError(c, "Failed to return copy")
		}
	}

	return response.Success(c, "Copy returned successfully", record)
}

// Reserve queues a member on an issued copy
// @Summary Reserve copy
// @Tags Lending
// @Security BearerAuth
// @Router /books/:isbn/copies/:number/reserve [post]
func (h *LendingHandler) Reserve(c *fiber.Ctx) error {
	key, req, ok := h.parseTransaction(c)
	if !ok {
		return nil
	}

	reservation, err := h.lendingService.ReserveCopy(key, req.MemberID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			return response.NotFound(c, err.Error())
		case errors.Is(err, domain.ErrMembershipExpired):
			return response.Forbidden(c, "Membership has expired")
		case errors.Is(err, domain.ErrCopyNotReservable):
			return response.Conflict(c, err.Error())
		default:
			return response.InternalServerError(c, "Failed to reserve copy")
		}
	}

	return response.Created(c, "Copy reserved successfully", reservation)
}

// CancelReservation drops a member from a copy's queue
// @Summary Cancel reservation
// @Tags Lending
// @Security BearerAuth
// @Router /books/:isbn/copies/:number/reserve [delete]
func (h *LendingHandler) CancelReservation(c *fiber.Ctx) error {
	key, req, ok := h.parseTransaction(c)
	if !ok {
		return nil
	}

	if err := h.lendingService.CancelReservation(key, req.MemberID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return response.NotFound(c, err.Error())
		}
		return response.InternalServerError(c, "Failed to cancel reservation")
	}

	return response.Success(c, "Reservation cancelled successfully", nil)
}

// OfferNext issues an available copy to the first eligible reserver
// @Summary Offer copy to next in queue
// @Tags Lending
// @Security BearerAuth
// @Router /books/:isbn/copies/:number/offer [post]
func (h *LendingHandler) OfferNext(c *fiber.Ctx) error {
	key, err := copyKeyFromParams(c)
	if err != nil {
		return response.BadRequest(c, "Invalid copy number")
	}

	record, err := h.lendingService.OfferToNext(key)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrCopyAlreadyIssued):
			return response.Conflict(c, "Copy is still issued out")
		case errors.Is(err, domain.ErrNotFound):
			return response.NotFound(c, err.Error())
		default:
			return response.InternalServerError(c, "Failed to offer copy")
		}
	}

	return response.Created(c, "Copy offered to next reserver", record)
}

// IssuanceHistory returns the full issuance log
// @Summary Issuance history
// @Tags Lending
// @Security BearerAuth
// @Router /lending/issuances [get]
func (h *LendingHandler) IssuanceHistory(c *fiber.Ctx) error {
	return response.Success(c, "Issuance history retrieved successfully", h.lendingService.IssuanceHistory())
}

// ReservationHistory returns the full reservation log
// @Summary Reservation history
// @Tags Lending
// @Security BearerAuth
// @Router /lending/reservations [get]
func (h *LendingHandler) ReservationHistory(c *fiber.Ctx) error {
	return response.Success(c, "Reservation history retrieved successfully", h.lendingService.ReservationHistory())
}

// OverdueReport returns the open loans past their due date
// @Summary Overdue report
// @Tags Lending
// @Security BearerAuth
// @Router /lending/overdue [get]
func (h *LendingHandler) OverdueReport(c *fiber.Ctx) error {
	return response.Success(c, "Overdue report generated successfully", h.overdueService.Report())
}

// parseTransaction reads the copy key from the route and the member from the
// body. When ok is false the error response has already been written.
func (h *LendingHandler) parseTransaction(c *fiber.Ctx) (key domain.CopyKey, req MemberRequest, ok bool) {
	key, err := copyKeyFromParams(c)
	if err != nil {
		response.BadRequest(c, "Invalid copy number")
		return key, req, false
	}

	if err := c.BodyParser(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return key, req, false
	}
	if err := validate.Struct(&req); err != nil {
		response.UnprocessableEntity(c, validationMessage(err))
		return key, req, false
	}
	return key, req, true
}
