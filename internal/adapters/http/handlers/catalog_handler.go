package handlers

import (
	"errors"
	"time"

	"libralend/internal/core/domain"
	"libralend/internal/core/services"
	"libralend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// CatalogHandler handles catalog endpoints
type CatalogHandler struct {
	catalogService *services.CatalogService
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(catalogService *services.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

// AddBook adds a new book to the catalog
// @Summary Add book
// @Tags Catalog
// @Security BearerAuth
// @Router /books [post]
func (h *CatalogHandler) AddBook(c *fiber.Ctx) error {
	var req services.AddBookInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := validate.Struct(&req); err != nil {
		return response.UnprocessableEntity(c, validationMessage(err))
	}

	book, err := h.catalogService.AddBook(&req)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrDuplicate):
			return response.Conflict(c, "A book with this ISBN already exists")
		case errors.Is(err, domain.ErrValidation):
			return response.BadRequest(c, err.Error())
		default:
			return response.InternalServerError(c, "Failed to add book")
		}
	}

	return response.Created(c, "Book added successfully", book)
}

// AddCopy adds a new copy of a book
// @Summary Add copy
// @Tags Catalog
// @Security BearerAuth
// @Router /books/:isbn/copies [post]
func (h *CatalogHandler) AddCopy(c *fiber.Ctx) error {
	var req services.AddCopyInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := validate.Struct(&req); err != nil {
		return response.UnprocessableEntity(c, validationMessage(err))
	}

	copyResp, err := h.catalogService.AddCopy(c.Params("isbn"), &req)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			return response.NotFound(c, "Book not found")
		case errors.Is(err, domain.ErrValidation):
			return response.BadRequest(c, err.Error())
		default:
			return response.InternalServerError(c, "Failed to add copy")
		}
	}

	return response.Created(c, "Copy added successfully", copyResp)
}

// RemoveCopy withdraws a copy from circulation
// @Summary Remove copy
// @Tags Catalog
// @Security BearerAuth
// @Router /books/:isbn/copies/:number [delete]
func (h *CatalogHandler) RemoveCopy(c *fiber.Ctx) error {
	number, err := c.ParamsInt("number")
	if err != nil {
		return response.BadRequest(c, "Invalid copy number")
	}

	if err := h.catalogService.RemoveCopy(c.Params("isbn"), number); err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			return response.NotFound(c, "Copy not found")
		case errors.Is(err, domain.ErrCopyInUse):
			return response.Conflict(c, "Copy is issued or reserved and cannot be removed")
		case errors.Is(err, domain.ErrValidation):
			return response.BadRequest(c, err.Error())
		default:
			return response.InternalServerError(c, "Failed to remove copy")
		}
	}

	return response.Success(c, "Copy removed successfully", nil)
}

// RelocateCopy moves a copy to a new shelf location
// @Summary Relocate copy
// @Tags Catalog
// @Security BearerAuth
// @Router /books/:isbn/copies/:number/location [put]
func (h *CatalogHandler) RelocateCopy(c *fiber.Ctx) error {
	key, err := copyKeyFromParams(c)
	if err != nil {
		return response.BadRequest(c, "Invalid copy number")
	}

	var req services.AddCopyInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := validate.Struct(&req); err != nil {
		return response.UnprocessableEntity(c, validationMessage(err))
	}

	if err := h.catalogService.RelocateCopy(key, &req); err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			return response.NotFound(c, "Copy not found")
		case errors.Is(err, domain.ErrValidation):
			return response.BadRequest(c, err.Error())
		default:
			return response.InternalServerError(c, "Failed to relocate copy")
		}
	}

	return response.Success(c, "Copy relocated successfully", nil)
}

// GetBook returns a single book
// @Summary Get book
// @Tags Catalog
// @Router /books/:isbn [get]
func (h *CatalogHandler) GetBook(c *fiber.Ctx) error {
	book, err := h.catalogService.GetBook(c.Params("isbn"))
	if err != nil {
		return response.NotFound(c, "Book not found")
	}
	return response.Success(c, "Book retrieved successfully", book)
}

// ListBooks searches the catalog. Query params title, author, subject,
// published_from and published_to narrow the result; with none set the whole
// catalog comes back.
// @Summary List books
// @Tags Catalog
// @Router /books [get]
func (h *CatalogHandler) ListBooks(c *fiber.Ctx) error {
	if title := c.Query("title"); title != "" {
		return response.Success(c, "Books retrieved successfully", h.catalogService.FindByTitle(title))
	}
	if author := c.Query("author"); author != "" {
		return response.Success(c, "Books retrieved successfully", h.catalogService.FindByAuthor(author))
	}
	if subject := c.Query("subject"); subject != "" {
		books, err := h.catalogService.FindBySubject(subject)
		if err != nil {
			return response.BadRequest(c, err.Error())
		}
		return response.Success(c, "Books retrieved successfully", books)
	}
	if c.Query("published_from") != "" || c.Query("published_to") != "" {
		from, err := parseDateQuery(c, "published_from")
		if err != nil {
			return response.BadRequest(c, "Invalid published_from date, expected YYYY-MM-DD")
		}
		to, err := parseDateQuery(c, "published_to")
		if err != nil {
			return response.BadRequest(c, "Invalid published_to date, expected YYYY-MM-DD")
		}
		return response.Success(c, "Books retrieved successfully", h.catalogService.FindPublishedBetween(from, to))
	}

	return response.Success(c, "Books retrieved successfully", h.catalogService.AllBooks())
}

// ListCopies returns every copy of a book
// @Summary List copies
// @Tags Catalog
// @Router /books/:isbn/copies [get]
func (h *CatalogHandler) ListCopies(c *fiber.Ctx) error {
	copies, err := h.catalogService.Copies(c.Params("isbn"))
	if err != nil {
		return response.NotFound(c, "Book not found")
	}
	return response.Success(c, "Copies retrieved successfully", copies)
}

// Availability reports whether a book can be issued or reserved right now
// @Summary Book availability
// @Tags Catalog
// @Router /books/:isbn/availability [get]
func (h *CatalogHandler) Availability(c *fiber.Ctx) error {
	availability, err := h.catalogService.Availability(c.Params("isbn"))
	if err != nil {
		return response.NotFound(c, "Book not found")
	}
	return response.Success(c, "Availability retrieved successfully", availability)
}

// copyKeyFromParams builds a copy key from the :isbn and :number route params.
func copyKeyFromParams(c *fiber.Ctx) (domain.CopyKey, error) {
	number, err := c.ParamsInt("number")
	if err != nil {
		return domain.CopyKey{}, err
	}
	return domain.CopyKey{ISBN: c.Params("isbn"), Number: number}, nil
}

// parseDateQuery reads a YYYY-MM-DD query param, zero time when absent.
func parseDateQuery(c *fiber.Ctx, name string) (time.Time, error) {
	value := c.Query(name)
	if value == "" {
		return time.Time{}, nil
	}
	return time.Parse("2006-01-02", value)
}
