package domain

import "time"

var interestsSchema = schema{
	{Name: "client_ids", Required: true, Nullable: false, Kind: KindClientIDs},
	{Name: "date", Required: false, Nullable: true, Kind: KindDate},
}

// InterestsRequest holds the validated arguments of the clients_interests
// method.
type InterestsRequest struct {
	ClientIDs []int
	Date      *time.Time
}

// ParseInterestsRequest validates clients_interests arguments.
func ParseInterestsRequest(args map[string]any) (*InterestsRequest, error) {
	values, err := interestsSchema.parse(args, time.Time{})
	if err != nil {
		return nil, err
	}

	return &InterestsRequest{
		ClientIDs: values["client_ids"].([]int),
		Date:      dateValue(values["date"]),
	}, nil
}
