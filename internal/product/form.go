// AngelaMos | 2026
// form.go

package product

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/carterperez-dev/templates/storefront/internal/core"
)

const (
	formMemory       = 2 << 20
	photoTooLargeMsg = "photo is Required and should be less then 1mb"
)

// ProductInput is a validated create or update request.
type ProductInput struct {
	Name        string
	Description string
	Price       float64
	Category    primitive.ObjectID
	Quantity    int
	Shipping    bool
	Photo       *Photo
}

// formError is reported with 500, which the admin console treats as a
// validation failure for product forms.
func formError(message string) *core.AppError {
	return core.NewAppError(
		core.ErrInvalidInput,
		message,
		http.StatusInternalServerError,
		"VALIDATION_ERROR",
	)
}

func parseProductForm(r *http.Request, v *validator.Validate) (*ProductInput, error) {
	err := r.ParseMultipartForm(formMemory)
	if err != nil && !errors.Is(err, http.ErrNotMultipart) {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return nil, formError(photoTooLargeMsg)
		}
		return nil, formError("invalid form data")
	}

	form := ProductForm{
		Name:        strings.TrimSpace(r.FormValue("name")),
		Description: strings.TrimSpace(r.FormValue("description")),
		Price:       strings.TrimSpace(r.FormValue("price")),
		Category:    strings.TrimSpace(r.FormValue("category")),
		Quantity:    strings.TrimSpace(r.FormValue("quantity")),
		Shipping:    strings.TrimSpace(r.FormValue("shipping")),
	}

	if err := v.Struct(form); err != nil {
		return nil, formError(core.FormatValidationError(err))
	}

	price, err := strconv.ParseFloat(form.Price, 64)
	if err != nil {
		return nil, formError("Price must be a number")
	}
	if price < 0 {
		return nil, formError("Price must be greater than or equal to 0")
	}

	quantity, err := strconv.Atoi(form.Quantity)
	if err != nil {
		return nil, formError("Quantity must be a whole number")
	}
	if quantity < 0 {
		return nil, formError("Quantity must be greater than or equal to 0")
	}

	categoryID, err := primitive.ObjectIDFromHex(form.Category)
	if err != nil {
		return nil, formError("Category must be a valid id")
	}

	//nolint:errcheck // anything but a truthy value means no shipping
	shipping, _ := strconv.ParseBool(form.Shipping)

	photo, err := photoFromForm(r.MultipartForm)
	if err != nil {
		return nil, err
	}

	return &ProductInput{
		Name:        form.Name,
		Description: form.Description,
		Price:       price,
		Category:    categoryID,
		Quantity:    quantity,
		Shipping:    shipping,
		Photo:       photo,
	}, nil
}

// photoFromForm returns nil when no photo part was attached.
func photoFromForm(mf *multipart.Form) (*Photo, error) {
	if mf == nil || len(mf.File["photo"]) == 0 {
		return nil, nil
	}

	header := mf.File["photo"][0]
	if header.Size > MaxPhotoBytes {
		return nil, formError(photoTooLargeMsg)
	}

	file, err := header.Open()
	if err != nil {
		return nil, formError("photo could not be read")
	}
	defer file.Close() //nolint:errcheck // read-only temp file

	return readPhoto(file, header.Header.Get("Content-Type"))
}

func readPhoto(r io.Reader, declaredType string) (*Photo, error) {
	data, err := io.ReadAll(io.LimitReader(r, MaxPhotoBytes+1))
	if err != nil {
		return nil, formError("photo could not be read")
	}
	if len(data) > MaxPhotoBytes {
		return nil, formError(photoTooLargeMsg)
	}
	if len(data) == 0 {
		return nil, nil
	}

	contentType := declaredType
	if contentType == "" || contentType == "application/octet-stream" {
		contentType = mimetype.Detect(data).String()
	}

	return &Photo{Data: data, ContentType: contentType}, nil
}
