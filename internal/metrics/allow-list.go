package metrics

import (
	"github.com/prometheus/common/model"
)

type SampleFilter interface {
	Filter(samples model.Vector) model.Vector
}

type RestrictiveAllowList struct {
	allowedTitles map[string]struct{}
}

type PermissiveAllowList struct{}

func (f *PermissiveAllowList) Filter(samples model.Vector) model.Vector {
	return samples
}

// NewAllowList returns a permissive filter for an empty list, otherwise a
// restrictive one.
func NewAllowList(titles []string) SampleFilter {
	if len(titles) == 0 {
		return &PermissiveAllowList{}
	}
	return NewRestrictiveAllowList(titles)
}

func NewRestrictiveAllowList(titles []string) SampleFilter {
	allowed := make(map[string]struct{}, len(titles))
	for _, title := range titles {
		allowed[title] = struct{}{}
	}

	return &RestrictiveAllowList{
		allowedTitles: allowed,
	}
}

func (f *RestrictiveAllowList) Filter(samples model.Vector) model.Vector {
	filtered := model.Vector{}
	for _, sample := range samples {
		if _, ok := f.allowedTitles[string(sample.Metric[TitleLabel])]; ok {
			filtered = append(filtered, sample)
		}
	}
	return filtered
}
