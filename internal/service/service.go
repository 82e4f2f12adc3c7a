// Package service holds the listing use cases: it validates forms, calls
// the repositories, shapes read views through package listing and
// announces committed mutations on the message broker.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"reflect"
	"sort"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/iliyamo/fyyur/internal/metrics"
	"github.com/iliyamo/fyyur/internal/queue"
)

// Publisher announces listing events. Implementations must be safe for
// concurrent use.
type Publisher interface {
	Publish(ctx context.Context, ev queue.ListingEvent) error
}

// ValidationError reports form fields that are missing or malformed.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return "invalid form: " + strings.Join(e.Fields, ", ")
}

// IsValidation reports whether err carries a *ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("form"), ",", 2)[0]
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	return v
}

// validateForm runs the struct tags of a request form and converts
// failures into a *ValidationError naming the offending fields.
func validateForm(form any) error {
	err := validate.Struct(form)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validate: %w", err)
	}
	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fe.Field())
	}
	sort.Strings(fields)
	return &ValidationError{Fields: fields}
}

// base carries the collaborators every service shares.
type base struct {
	pub Publisher
	log *slog.Logger
	now func() time.Time
}

func newBase(pub Publisher, log *slog.Logger) base {
	if pub == nil {
		pub = queue.NopPublisher{}
	}
	if log == nil {
		log = slog.Default()
	}
	return base{pub: pub, log: log, now: func() time.Time { return time.Now().UTC() }}
}

// publish sends ev after a successful commit. A broker failure never fails
// the request; it is logged and counted.
func (b base) publish(ctx context.Context, ev queue.ListingEvent) {
	if err := b.pub.Publish(ctx, ev); err != nil {
		metrics.RecordPublishFailure()
		b.log.Warn("listing event not published", "type", ev.Type, "entity_id", ev.EntityID, "err", err)
	}
}

func (b base) event(typ string, id uint64, name string) queue.ListingEvent {
	return queue.NewListingEvent(typ, id, name, b.now())
}
