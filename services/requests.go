package services

import (
	"errors"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// CreateProposalRequest starts a draft proposal.
type CreateProposalRequest struct {
	Client    string `json:"client"`
	Mode      string `json:"mode"`
	Signatory string `json:"signatory,omitempty"`
}

func (r CreateProposalRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Client,
			validation.By(notBlank("Enter Client Name")),
			validation.Length(0, 120),
		),
		validation.Field(&r.Mode,
			validation.Required.Error("Select a project scope"),
			validation.In(string(ModePartner), string(ModeFitOut)).Error("Unknown project scope"),
		),
		validation.Field(&r.Signatory, validation.Length(0, 80)),
	)
}

// AddRoomRequest adds one room by distance or package, or a pasted batch of
// "Name, Distance" lines. A room added by package may omit its name and
// distance; both then default from the package.
type AddRoomRequest struct {
	Name     string   `json:"name"`
	Distance *float64 `json:"distance"`
	Package  string   `json:"package"`
	Lines    string   `json:"lines"`
}

func (r AddRoomRequest) Validate() error {
	single := strings.TrimSpace(r.Lines) == ""
	byDistance := single && strings.TrimSpace(r.Package) == ""
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name,
			validation.When(byDistance, validation.By(notBlank("Room name is required"))),
			validation.Length(0, 120),
		),
		validation.Field(&r.Distance,
			validation.When(byDistance,
				validation.NotNil.Error("Enter a distance or choose a package"),
			),
			validation.Min(0.0).Error("Distance must be a positive number of metres"),
		),
	)
}

// FieldErrors flattens validation errors to field -> message. Errors that are
// not field errors map to the "form" key.
func FieldErrors(err error) map[string]string {
	out := make(map[string]string)
	if err == nil {
		return out
	}
	var verrs validation.Errors
	if errors.As(err, &verrs) {
		for field, fe := range verrs {
			out[field] = fe.Error()
		}
		return out
	}
	out["form"] = err.Error()
	return out
}

func notBlank(msg string) validation.RuleFunc {
	return func(value any) error {
		s, _ := value.(string)
		if strings.TrimSpace(s) == "" {
			return errors.New(msg)
		}
		return nil
	}
}
