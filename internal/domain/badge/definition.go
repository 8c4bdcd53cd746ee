package badge

const (
	FirstPostBadgeName    = "first-post"
	CircleLeaderBadgeName = "circle-leader"
	ContributorBadgeName  = "contributor"
	ExpertBadgeName       = "expert"
	HelperBadgeName       = "helper"
)

const (
	ContributorPoints     = 100
	ExpertBestAnswerCount = 5
	HelperThanksCount     = 50
)

type Definition struct {
	ID          string
	Name        string
	Description string
}

var Definitions = []Definition{
	{ID: FirstPostBadgeName, Name: "First Post", Description: "Wrote a first post"},
	{ID: CircleLeaderBadgeName, Name: "Circle Leader", Description: "Founded a circle"},
	{ID: ContributorBadgeName, Name: "Contributor", Description: "Reached 100 points"},
	{ID: ExpertBadgeName, Name: "Expert", Description: "Had 5 posts selected as the best answer"},
	{ID: HelperBadgeName, Name: "Helper", Description: "Received 50 thanks"},
}
