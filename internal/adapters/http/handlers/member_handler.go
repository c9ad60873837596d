package handlers

import (
	"errors"

	"libralend/internal/core/domain"
	"libralend/internal/core/services"
	"libralend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// MemberHandler handles member endpoints
type MemberHandler struct {
	memberService *services.MemberService
}

// NewMemberHandler creates a new member handler
func NewMemberHandler(memberService *services.MemberService) *MemberHandler {
	return &MemberHandler{memberService: memberService}
}

// Register enrolls a new member
// @Summary Register member
// @Tags Members
// @Security BearerAuth
// @Router /members [post]
func (h *MemberHandler) Register(c *fiber.Ctx) error {
	var req services.RegisterMemberInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := validate.Struct(&req); err != nil {
		return response.UnprocessableEntity(c, validationMessage(err))
	}

	member, err := h.memberService.RegisterMember(&req)
	if err != nil {
		if errors.Is(err, domain.ErrValidation) {
			return response.BadRequest(c, err.Error())
		}
		return response.InternalServerError(c, "Failed to register member")
	}

	return response.Created(c, "Member registered successfully", member)
}

// Get returns a single member
// @Summary Get member
// @Tags Members
// @Security BearerAuth
// @Router /members/:id [get]
func (h *MemberHandler) Get(c *fiber.Ctx) error {
	member, err := h.memberService.GetMember(c.Params("id"))
	if err != nil {
		return response.NotFound(c, "Member not found")
	}
	return response.Success(c, "Member retrieved successfully", member)
}

// List returns every member
// @Summary List members
// @Tags Members
// @Security BearerAuth
// @Router /members [get]
func (h *MemberHandler) List(c *fiber.Ctx) error {
	return response.Success(c, "Members retrieved successfully", h.memberService.AllMembers())
}

// Renew extends or restarts a membership
// @Summary Renew membership
// @Tags Members
// @Security BearerAuth
// @Router /members/:id/renew [post]
func (h *MemberHandler) Renew(c *fiber.Ctx) error {
	member, err := h.memberService.RenewMembership(c.Params("id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return response.NotFound(c, "Member not found")
		}
		return response.InternalServerError(c, "Failed to renew membership")
	}
	return response.Success(c, "Membership renewed successfully", member)
}

// Cancel ends a membership immediately
// @Summary Cancel membership
// @Tags Members
// @Security BearerAuth
// @Router /members/:id/cancel [post]
func (h *MemberHandler) Cancel(c *fiber.Ctx) error {
	if err := h.memberService.CancelMembership(c.Params("id")); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return response.NotFound(c, "Member not found")
		}
		return response.InternalServerError(c, "Failed to cancel membership")
	}
	return response.Success(c, "Membership cancelled successfully", nil)
}

// Remove deletes a member with no copies out
// @Summary Remove member
// @Tags Members
// @Security BearerAuth
// @Router /members/:id [delete]
func (h *MemberHandler) Remove(c *fiber.Ctx) error {
	if err := h.memberService.RemoveMember(c.Params("id")); err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			return response.NotFound(c, "Member not found")
		case errors.Is(err, domain.ErrMemberHasCopies):
			return response.Conflict(c, "Member still holds issued copies")
		default:
			return response.InternalServerError(c, "Failed to remove member")
		}
	}
	return response.Success(c, "Member removed successfully", nil)
}
