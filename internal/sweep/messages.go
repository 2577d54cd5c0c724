package sweep

import (
	"fmt"

	"github.com/lao-tseu-is-alive/go-swarm-shape/pkg/swarm"
	"google.golang.org/protobuf/types/known/structpb"
)

// Field names of the summary reply, the same as the JSON tags of
// swarm.Summary.
const (
	fieldTotalSteps      = "total_steps"
	fieldAverageDistance = "average_distance_to_target"
	fieldTimedOut        = "timed_out"
)

func summaryToStruct(s swarm.Summary) (*structpb.Struct, error) {
	return structpb.NewStruct(map[string]any{
		fieldTotalSteps:      s.TotalSteps,
		fieldAverageDistance: s.AverageDistanceToTarget,
		fieldTimedOut:        s.TimedOut,
	})
}

func summaryFromStruct(st *structpb.Struct) (swarm.Summary, error) {
	var s swarm.Summary
	fields := st.GetFields()
	for _, name := range []string{fieldTotalSteps, fieldAverageDistance, fieldTimedOut} {
		if _, ok := fields[name]; !ok {
			return s, fmt.Errorf("summary reply lacks %q", name)
		}
	}
	s.TotalSteps = int(fields[fieldTotalSteps].GetNumberValue())
	s.AverageDistanceToTarget = fields[fieldAverageDistance].GetNumberValue()
	s.TimedOut = fields[fieldTimedOut].GetBoolValue()
	return s, nil
}
