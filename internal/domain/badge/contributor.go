package badge

import "context"

type contributorBadgeScanner struct {
	threshold int64
}

func NewContributorBadgeScanner() *contributorBadgeScanner {
	return &contributorBadgeScanner{threshold: ContributorPoints}
}

func (contributorBadgeScanner) Name() string {
	return ContributorBadgeName
}

func (s *contributorBadgeScanner) Scan(_ context.Context, input ScanInput) (bool, error) {
	return input.NextPoints >= s.threshold, nil
}
