package domain

import (
	stderrors "errors"
	"fmt"
	"meetup-bot/errors"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/samber/lo"
	"gopkg.in/yaml.v3"
)

var validate = newValidator()

// newValidator reports fields under their YAML names.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		return strings.SplitN(field.Tag.Get("yaml"), ",", 2)[0]
	})
	return v
}

// invalid wraps err into ErrInvalidOptions with a message an organizer can act on.
func invalid(err error) error {
	var fieldErrors validator.ValidationErrors
	if !stderrors.As(err, &fieldErrors) || len(fieldErrors) == 0 {
		return fmt.Errorf("%w: %v", errors.ErrInvalidOptions, err)
	}
	field := fieldErrors[0]
	switch field.Tag() {
	case "required", "min":
		return fmt.Errorf("%w: %s is required", errors.ErrInvalidOptions, field.Field())
	case "max":
		return fmt.Errorf("%w: %s is too long (max %s)", errors.ErrInvalidOptions, field.Field(), field.Param())
	case "oneof":
		return fmt.Errorf("%w: %s must be one of %s", errors.ErrInvalidOptions, field.Field(), field.Param())
	case "http_url":
		return fmt.Errorf("%w: %s must be a web address", errors.ErrInvalidOptions, field.Field())
	default:
		return fmt.Errorf("%w: %s is invalid", errors.ErrInvalidOptions, field.Field())
	}
}

// Options is the YAML body of a "create" command.
type Options struct {
	Title            string       `yaml:"title" validate:"required,max=200"`
	Description      string       `yaml:"description" validate:"max=1600"`
	Date             string       `yaml:"date" validate:"required"`
	Location         string       `yaml:"location"`
	LocationType     string       `yaml:"location_type" validate:"omitempty,oneof=address private voice"`
	LocationComments string       `yaml:"location_comments" validate:"max=300"`
	Links            []LinkOption `yaml:"links" validate:"max=10,dive"`
}

type LinkOption struct {
	Name string `yaml:"name" validate:"max=100"`
	URL  string `yaml:"url" validate:"required,http_url"`
}

// EditOptions is the YAML body of an "edit" command. Absent keys are left unchanged.
type EditOptions struct {
	Title            *string       `yaml:"title" validate:"omitempty,min=1,max=200"`
	Description      *string       `yaml:"description" validate:"omitempty,max=1600"`
	Date             *string       `yaml:"date"`
	Location         *string       `yaml:"location"`
	LocationType     *string       `yaml:"location_type" validate:"omitempty,oneof=address private voice none"`
	LocationComments *string       `yaml:"location_comments" validate:"omitempty,max=300"`
	Links            *[]LinkOption `yaml:"links" validate:"omitempty,max=10,dive"`
}

func (o *Options) trim() {
	o.Title = strings.TrimSpace(o.Title)
	o.Description = strings.TrimSpace(o.Description)
	o.Location = strings.TrimSpace(o.Location)
	o.LocationComments = strings.TrimSpace(o.LocationComments)
}

func (o *EditOptions) trim() {
	for _, field := range []*string{o.Title, o.Description, o.Location, o.LocationComments} {
		if field != nil {
			*field = strings.TrimSpace(*field)
		}
	}
}

// ParseOptions reads and validates the details of a new meetup.
func ParseOptions(body string, now time.Time) (Props, error) {
	var options Options
	if err := yaml.Unmarshal([]byte(body), &options); err != nil {
		return Props{}, fmt.Errorf("%w: %v", errors.ErrInvalidOptions, err)
	}
	options.trim()
	if err := validate.Struct(options); err != nil {
		return Props{}, invalid(err)
	}
	timestamp, err := parseFutureDate(options.Date, now)
	if err != nil {
		return Props{}, err
	}
	location, err := parseLocation(options.LocationType, options.Location, options.LocationComments)
	if err != nil {
		return Props{}, err
	}
	return Props{
		Title:       strings.TrimSpace(options.Title),
		Description: strings.TrimSpace(options.Description),
		Timestamp:   timestamp,
		Location:    location,
		Links:       toLinks(options.Links),
	}, nil
}

// ParseChanges reads and validates a partial edit against the current meetup.
func ParseChanges(body string, current Meetup, now time.Time) (Changes, error) {
	var options EditOptions
	if err := yaml.Unmarshal([]byte(body), &options); err != nil {
		return Changes{}, fmt.Errorf("%w: %v", errors.ErrInvalidOptions, err)
	}
	options.trim()
	if err := validate.Struct(options); err != nil {
		return Changes{}, invalid(err)
	}
	if options.Title != nil && *options.Title == "" {
		return Changes{}, fmt.Errorf("%w: title is required", errors.ErrInvalidOptions)
	}

	var changes Changes
	if options.Title != nil {
		changes.Title = Set(strings.TrimSpace(*options.Title))
	}
	if options.Description != nil {
		changes.Description = Set(strings.TrimSpace(*options.Description))
	}
	if options.Date != nil {
		timestamp, err := parseFutureDate(*options.Date, now)
		if err != nil {
			return Changes{}, err
		}
		changes.Timestamp = Set(timestamp)
	}
	if options.LocationType != nil || options.Location != nil || options.LocationComments != nil {
		locationType, value, comments := locationParts(current.Location)
		locationType = lo.FromPtrOr(options.LocationType, locationType)
		value = lo.FromPtrOr(options.Location, value)
		comments = lo.FromPtrOr(options.LocationComments, comments)
		if locationType == "" && value != "" {
			return Changes{}, fmt.Errorf("%w: location_type is required with a location", errors.ErrInvalidOptions)
		}
		if locationType == "none" {
			locationType = ""
		}
		location, err := parseLocation(locationType, value, comments)
		if err != nil {
			return Changes{}, err
		}
		changes.Location = Set(location)
	}
	if options.Links != nil {
		changes.Links = Set(toLinks(*options.Links))
	}
	return changes, nil
}

func parseFutureDate(value string, now time.Time) (time.Time, error) {
	timestamp, err := time.Parse(time.RFC3339, strings.TrimSpace(value))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: date must look like 2006-01-02T15:04:05-07:00", errors.ErrInvalidOptions)
	}
	if !timestamp.After(now) {
		return time.Time{}, fmt.Errorf("%w: can't create a meetup in the past", errors.ErrInvalidOptions)
	}
	return timestamp.UTC(), nil
}

func parseLocation(locationType, value, comments string) (Location, error) {
	value = strings.TrimSpace(value)
	comments = strings.TrimSpace(comments)
	switch locationType {
	case "":
		return nil, nil
	case "voice":
		return Voice{}, nil
	case "address", "private":
		if value == "" {
			return nil, fmt.Errorf("%w: location is missing", errors.ErrInvalidOptions)
		}
		if locationType == "address" {
			return Address{Value: value, Comments: comments}, nil
		}
		return Private{Value: value, Comments: comments}, nil
	default:
		return nil, fmt.Errorf("%w: unknown location type %q", errors.ErrInvalidOptions, locationType)
	}
}

func locationParts(location Location) (string, string, string) {
	switch l := location.(type) {
	case Address:
		return "address", l.Value, l.Comments
	case Private:
		return "private", l.Value, l.Comments
	case Voice:
		return "voice", "", ""
	case nil:
		return "", "", ""
	default:
		panic(fmt.Sprintf("unknown location %T", location))
	}
}

func toLinks(options []LinkOption) []Link {
	return lo.Map(options, func(link LinkOption, _ int) Link {
		return Link{Name: strings.TrimSpace(link.Name), URL: strings.TrimSpace(link.URL)}
	})
}
