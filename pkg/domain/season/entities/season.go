package entities

import common "github.com/survivor-pool/survivor-pool/pkg/domain"

// Contestant is a cast member of a Season.
type Contestant struct {
	ID         common.ID `json:"id" bson:"_id"`
	Name       string    `json:"name" bson:"name"`
	Age        *int      `json:"age,omitempty" bson:"age,omitempty"`
	Occupation string    `json:"occupation,omitempty" bson:"occupation,omitempty"`
	Hometown   string    `json:"hometown,omitempty" bson:"hometown,omitempty"`
}

// Elimination records that a contestant was voted out during a given week.
type Elimination struct {
	Week                int       `json:"week" bson:"week"`
	EliminatedContestant common.ID `json:"eliminated_contestant_id" bson:"eliminated_contestant_id"`
}

// Tribe is a named, colored grouping of contestants in effect during a week.
type Tribe struct {
	Name    string      `json:"name" bson:"name"`
	Color   string      `json:"color" bson:"color"`
	Members []common.ID `json:"members" bson:"members"`
}

// TribeWeek is the tribe roster configuration that took effect at Week.
type TribeWeek struct {
	Week   int     `json:"week" bson:"week"`
	Tribes []Tribe `json:"tribes" bson:"tribes"`
}

// Advantage is an in-game edge a contestant held, optionally time-boxed.
type Advantage struct {
	ID                   common.ID `json:"id" bson:"_id"`
	ContestantID         common.ID `json:"contestant_id" bson:"contestant_id"`
	DisplayName          string    `json:"advantage_display_name" bson:"advantage_display_name"`
	Type                 string    `json:"advantage_type" bson:"advantage_type"`
	AcquisitionNotes     string    `json:"acquisition_notes,omitempty" bson:"acquisition_notes,omitempty"`
	EndNotes             string    `json:"end_notes,omitempty" bson:"end_notes,omitempty"`
	ObtainedWeek         *int      `json:"obtained_week,omitempty" bson:"obtained_week,omitempty"`
	EndWeek              *int      `json:"end_week,omitempty" bson:"end_week,omitempty"`
}

// Season is read-only to this system; it is sourced from an external feed.
type Season struct {
	ID            common.ID     `json:"id" bson:"_id"`
	Name          string        `json:"season_name" bson:"season_name"`
	Number        int           `json:"season_number" bson:"season_number"`
	Contestants   []Contestant  `json:"contestants" bson:"contestants"`
	Eliminations  []Elimination `json:"eliminations" bson:"eliminations"`
	TribeTimeline []TribeWeek   `json:"tribe_timeline" bson:"tribe_timeline"`
	Advantages    []Advantage   `json:"advantages" bson:"advantages"`
}

func (s Season) GetID() common.ID { return s.ID }

// Contestant looks up a contestant by id.
func (s *Season) Contestant(id common.ID) (Contestant, bool) {
	for _, c := range s.Contestants {
		if c.ID == id {
			return c, true
		}
	}
	return Contestant{}, false
}

// EliminationWeek returns the week a contestant was voted out, if any.
func (s *Season) EliminationWeek(contestant common.ID) (int, bool) {
	for _, e := range s.Eliminations {
		if e.EliminatedContestant == contestant {
			return e.Week, true
		}
	}
	return 0, false
}

// EliminatedAtWeek returns the contestant ids eliminated during exactly week.
func (s *Season) EliminatedAtWeek(week int) []common.ID {
	var out []common.ID
	for _, e := range s.Eliminations {
		if e.Week == week && !e.EliminatedContestant.IsZero() {
			out = append(out, e.EliminatedContestant)
		}
	}
	return out
}

// HasEliminationForWeek reports whether the season has an elimination entry
// recorded for exactly week, with a non-null contestant.
func (s *Season) HasEliminationForWeek(week int) bool {
	return len(s.EliminatedAtWeek(week)) > 0
}
