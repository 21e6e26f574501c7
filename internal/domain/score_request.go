package domain

import "time"

var scoreSchema = schema{
	{Name: "first_name", Nullable: true, Kind: KindChar},
	{Name: "last_name", Nullable: true, Kind: KindChar},
	{Name: "email", Nullable: true, Kind: KindEmail},
	{Name: "phone", Nullable: true, Kind: KindPhone},
	{Name: "birthday", Nullable: true, Kind: KindBirthDay},
	{Name: "gender", Nullable: true, Kind: KindGender},
}

// MissingPairMessage is the message returned when none of the identifying pairs
// is complete.
const MissingPairMessage = "Must be at least one pair of 'phone-email', 'first_name-last_name' or 'gender-birthday'"

// ScoreRequest holds the validated arguments of the online_score method.
type ScoreRequest struct {
	FirstName *string
	LastName  *string
	Email     *string
	Phone     *string
	Birthday  *time.Time
	Gender    *int

	has []string
}

// ParseScoreRequest validates online_score arguments. now anchors the
// birthday age limit.
func ParseScoreRequest(args map[string]any, now time.Time) (*ScoreRequest, error) {
	req, err := ParseScoreFields(args, now)
	if err != nil {
		return nil, err
	}
	if !req.hasPair() {
		return nil, NewValidationError(MissingPairMessage)
	}
	return req, nil
}

// ParseScoreFields validates each online_score argument on its own without
// requiring a complete identifying pair. The admin score does not depend on
// the arguments, so admin requests are checked this way.
func ParseScoreFields(args map[string]any, now time.Time) (*ScoreRequest, error) {
	values, err := scoreSchema.parse(args, now)
	if err != nil {
		return nil, err
	}

	return &ScoreRequest{
		FirstName: stringValue(values["first_name"]),
		LastName:  stringValue(values["last_name"]),
		Email:     stringValue(values["email"]),
		Phone:     stringValue(values["phone"]),
		Birthday:  dateValue(values["birthday"]),
		Gender:    intValue(values["gender"]),
		has:       scoreSchema.present(values),
	}, nil
}

// Has returns the names of the supplied non-null fields in declaration order.
func (r *ScoreRequest) Has() []string {
	return append([]string(nil), r.has...)
}

// hasPair checks that at least one identifying pair has both members set.
// Empty strings and the unknown gender do not count.
func (r *ScoreRequest) hasPair() bool {
	return (nonEmpty(r.Phone) && nonEmpty(r.Email)) ||
		(nonEmpty(r.FirstName) && nonEmpty(r.LastName)) ||
		(r.Gender != nil && *r.Gender != GenderUnknown && r.Birthday != nil)
}

func nonEmpty(s *string) bool {
	return s != nil && *s != ""
}
