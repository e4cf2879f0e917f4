package career

import "sort"

// MaxConsecutiveGap is the largest gap, in months, between the end of one
// period and the start of the next for both to count as one engagement.
const MaxConsecutiveGap = 1

// OngoingBlocksContinuation closes a span after an open-ended period even
// if a later record at the same organization starts right after it.
const OngoingBlocksContinuation = true

// groupKey identifies one organizational relationship.
type groupKey struct {
	organization string
	clientWork   bool
	client       string
}

func keyOf(e Experience) groupKey {
	return groupKey{
		organization: e.OrganizationName,
		clientWork:   e.IsClientWork,
		client:       e.ClientCompanyName,
	}
}

// GroupExperiences folds experiences into continuous spans per
// (organization, client work, client company) and returns them newest first.
// Experiences inside a span are ordered oldest first.
func GroupExperiences(experiences []Experience) []GroupedExperience {
	if len(experiences) == 0 {
		return []GroupedExperience{}
	}

	// Buckets are walked in first-appearance order so equal start dates keep
	// the input order through the final stable sort.
	var order []groupKey
	buckets := make(map[groupKey][]Experience)
	for _, e := range experiences {
		k := keyOf(e)
		if _, ok := buckets[k]; !ok {
			order = append(order, k)
		}
		buckets[k] = append(buckets[k], e)
	}

	groups := make([]GroupedExperience, 0, len(experiences))
	for _, k := range order {
		bucket := buckets[k]
		sort.SliceStable(bucket, func(i, j int) bool {
			return bucket[i].StartIndex() < bucket[j].StartIndex()
		})

		run := []Experience{bucket[0]}
		for _, next := range bucket[1:] {
			if isConsecutive(run[len(run)-1], next) {
				run = append(run, next)
				continue
			}
			groups = append(groups, newGroup(run))
			run = []Experience{next}
		}
		groups = append(groups, newGroup(run))
	}

	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].StartIndex() > groups[j].StartIndex()
	})
	return groups
}

// isConsecutive reports whether next continues the span ending with last.
// Overlapping periods (negative gap) never continue a span.
func isConsecutive(last, next Experience) bool {
	end, ok := last.EndIndex()
	if !ok {
		return !OngoingBlocksContinuation
	}
	gap := next.StartIndex() - end
	return gap >= 0 && gap <= MaxConsecutiveGap
}

func newGroup(run []Experience) GroupedExperience {
	first, last := run[0], run[len(run)-1]
	exps := make([]Experience, len(run))
	copy(exps, run)
	return GroupedExperience{
		OrganizationName:  first.OrganizationName,
		IsClientWork:      first.IsClientWork,
		ClientCompanyName: first.ClientCompanyName,
		TotalStartYear:    first.StartYear,
		TotalStartMonth:   first.StartMonth,
		TotalEndYear:      cloneInt(last.EndYear),
		TotalEndMonth:     cloneInt(last.EndMonth),
		Experiences:       exps,
	}
}

func cloneInt(p *int) *int {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
