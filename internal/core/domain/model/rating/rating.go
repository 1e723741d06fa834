// Package rating holds the one-time cross ratings exporters and forwarders leave after a
// completed order.
package rating

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"freightdesk/internal/core/domain/model/kernel"
	"freightdesk/internal/pkg/errs"
	"freightdesk/internal/pkg/guard"
)

const (
	MinScore         = 1
	MaxScore         = 5
	maxCommentLength = 2000
)

var ErrRatingIsNotConstructed = errors.New("Rating must be created via NewRating constructor")

// Direction tells who rates whom.
type Direction string

const (
	ForwarderRatesExporter Direction = "FORWARDER_TO_EXPORTER"
	ExporterRatesForwarder Direction = "EXPORTER_TO_FORWARDER"
)

// Category is one scored aspect of a rating.
type Category string

const (
	Communication       Category = "COMMUNICATION"
	Timeliness          Category = "TIMELINESS"
	PriceAccuracy       Category = "PRICE_ACCURACY"
	Documentation       Category = "DOCUMENTATION"
	PaymentPunctuality  Category = "PAYMENT_PUNCTUALITY"
	InformationAccuracy Category = "INFORMATION_ACCURACY"
)

// RequiredCategories lists the categories every rating in the direction must score.
func (d Direction) RequiredCategories() []Category {
	switch d {
	case ForwarderRatesExporter:
		return []Category{Communication, PaymentPunctuality, InformationAccuracy}
	case ExporterRatesForwarder:
		return []Category{Communication, Timeliness, PriceAccuracy, Documentation}
	default:
		return nil
	}
}

func (d Direction) Validate() error {
	if d.RequiredCategories() == nil {
		return errs.NewValueIsInvalidErrorWithCause("rating direction", fmt.Errorf("%q is not valid", string(d)))
	}
	return nil
}

// Scores maps a category to an integer score in [MinScore, MaxScore].
type Scores map[Category]int

// Validate checks that exactly the required categories are present and in range.
func (s Scores) Validate(d Direction) error {
	required := d.RequiredCategories()
	allowed := make(map[Category]struct{}, len(required))

	var validationErrs []error
	for _, c := range required {
		allowed[c] = struct{}{}
		if _, ok := s[c]; !ok {
			validationErrs = append(validationErrs, errs.NewValueIsRequiredError("score "+string(c)))
		}
	}

	categories := make([]string, 0, len(s))
	for c := range s {
		categories = append(categories, string(c))
	}
	sort.Strings(categories)

	for _, name := range categories {
		c := Category(name)
		if _, ok := allowed[c]; !ok {
			validationErrs = append(validationErrs, errs.NewValueIsInvalidErrorWithCause(
				"score "+name, fmt.Errorf("category is not rated for %s", string(d))))
			continue
		}
		if v := s[c]; v < MinScore || v > MaxScore {
			validationErrs = append(validationErrs, errs.NewValueIsOutOfRangeError("score "+name, v, MinScore, MaxScore))
		}
	}
	return errors.Join(validationErrs...)
}

// Rating is written once per (order, rater company) and never updated.
type Rating struct {
	id        kernel.UUID
	orderID   kernel.UUID
	raterID   kernel.UUID
	rateeID   kernel.UUID
	direction Direction
	scores    Scores
	comment   string
	createdBy kernel.UUID
	createdAt time.Time

	guard guard.ConstructorGuard
}

func NewRating(
	id, orderID, raterID, rateeID kernel.UUID,
	direction Direction,
	scores Scores,
	comment string,
	createdBy kernel.UUID,
	now time.Time,
) (*Rating, error) {
	comment = strings.TrimSpace(comment)

	var commentErr error
	if len(comment) > maxCommentLength {
		commentErr = errs.NewValueIsOutOfRangeError("comment length", len(comment), 0, maxCommentLength)
	}

	var directionErr, scoresErr error
	if directionErr = direction.Validate(); directionErr == nil {
		scoresErr = scores.Validate(direction)
	}

	if err := errors.Join(
		id.Validate(),
		orderID.Validate(),
		raterID.Validate(),
		rateeID.Validate(),
		createdBy.Validate(),
		directionErr,
		scoresErr,
		commentErr,
	); err != nil {
		return nil, err
	}

	copied := make(Scores, len(scores))
	for c, v := range scores {
		copied[c] = v
	}

	return &Rating{
		id:        id,
		orderID:   orderID,
		raterID:   raterID,
		rateeID:   rateeID,
		direction: direction,
		scores:    copied,
		comment:   comment,
		createdBy: createdBy,
		createdAt: now.UTC(),
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (r *Rating) Validate() error {
	if r == nil {
		return ErrRatingIsNotConstructed
	}
	return r.guard.Validate(ErrRatingIsNotConstructed)
}

func (r *Rating) ID() kernel.UUID        { return r.id }
func (r *Rating) OrderID() kernel.UUID   { return r.orderID }
func (r *Rating) RaterID() kernel.UUID   { return r.raterID }
func (r *Rating) RateeID() kernel.UUID   { return r.rateeID }
func (r *Rating) Direction() Direction   { return r.direction }
func (r *Rating) Scores() Scores         { return r.scores }
func (r *Rating) Comment() string        { return r.comment }
func (r *Rating) CreatedBy() kernel.UUID { return r.createdBy }
func (r *Rating) CreatedAt() time.Time   { return r.createdAt }

// Average is the mean category score.
func (r *Rating) Average() float64 {
	if len(r.scores) == 0 {
		return 0
	}
	total := 0
	for _, v := range r.scores {
		total += v
	}
	return float64(total) / float64(len(r.scores))
}
