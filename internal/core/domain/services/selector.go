package services

import (
	"errors"

	"dispatch/internal/core/domain/model/partner"
)

// ErrNoCandidates is returned when selection is attempted over an empty candidate slice.
var ErrNoCandidates = errors.New("no candidate partners")

// SelectLeastLoaded picks the partner with the lowest current load from the
// given candidates.
//
// Ties are broken by candidate order: the first partner encountered with the
// minimal load wins, so callers control tie-breaking through the order in
// which they supply candidates.
//
// Parameters:
//   - candidates: Partners to choose from, already filtered for eligibility
//
// Returns:
//   - *partner.Partner: The least-loaded candidate
//   - error: ErrNoCandidates when the slice is empty, or a validation error
func SelectLeastLoaded(candidates []*partner.Partner) (*partner.Partner, error) {
	var best *partner.Partner

	for _, p := range candidates {
		if err := p.Validate(); err != nil {
			return nil, err
		}

		if best == nil || p.CurrentLoad() < best.CurrentLoad() {
			best = p
		}
	}

	if best == nil {
		return nil, ErrNoCandidates
	}

	return best, nil
}
