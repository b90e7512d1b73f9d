package model

// Goal is a selectable financial goal on the goals screen.
type Goal struct {
	ID    string
	Title string
}

// Trait is a financial trait the user can focus on.
type Trait struct {
	ID          string
	Title       string
	Description string
}

// LiteracyLevel is one notch of the self-assessment slider.
type LiteracyLevel struct {
	Value int
	Label string
}

// RewardCategory groups redeemable rewards.
type RewardCategory string

const (
	CategoryEducational RewardCategory = "educational"
	CategoryExperience  RewardCategory = "experience"
	CategoryPartner     RewardCategory = "partner"
)

// Reward is a catalog item redeemable with coins once the level requirement is met.
type Reward struct {
	ID            string
	Title         string
	Category      RewardCategory
	TierID        string
	Cost          int
	LevelRequired int
}

var Goals = []Goal{
	{ID: "home", Title: "Saving for a home"},
	{ID: "debt", Title: "Reducing debt"},
	{ID: "emergency", Title: "Building emergency fund"},
	{ID: "literacy", Title: "Becoming more financially literate"},
	{ID: "investing", Title: "Investing for the future"},
	{ID: "other", Title: "Other"},
}

var Traits = []Trait{
	{ID: "saver", Title: "Saver", Description: "Master saving techniques"},
	{ID: "investor", Title: "Investor", Description: "Learn wealth-building strategies"},
	{ID: "budgeter", Title: "Budgeter", Description: "Develop expense management skills"},
	{ID: "scholar", Title: "Financial Scholar", Description: "Build financial knowledge"},
}

var LiteracyLevels = []LiteracyLevel{
	{Value: 1, Label: "Financial Rookie"},
	{Value: 2, Label: "Budget Beginner"},
	{Value: 3, Label: "Money Manager"},
	{Value: 4, Label: "Finance Enthusiast"},
	{Value: 5, Label: "Wealth Wizard"},
}

var Rewards = []Reward{
	{ID: "coffee_voucher", Title: "Free Coffee Voucher", Category: CategoryPartner, TierID: "bronze", Cost: 100, LevelRequired: 1},
	{ID: "ebook_finance", Title: "Financial Basics E-Book", Category: CategoryEducational, TierID: "bronze", Cost: 150, LevelRequired: 2},
	{ID: "webinar_access", Title: "Financial Webinar Access", Category: CategoryEducational, TierID: "bronze", Cost: 200, LevelRequired: 3},
	{ID: "grocery_discount", Title: "5% Grocery Discount", Category: CategoryPartner, TierID: "bronze", Cost: 250, LevelRequired: 4},
	{ID: "wework_pass", Title: "3-Day WeWork Pass", Category: CategoryExperience, TierID: "silver", Cost: 400, LevelRequired: 6},
	{ID: "amazon_voucher_small", Title: "$10 Amazon Voucher", Category: CategoryPartner, TierID: "silver", Cost: 500, LevelRequired: 7},
	{ID: "financial_workshop", Title: "Investment Workshop", Category: CategoryEducational, TierID: "silver", Cost: 600, LevelRequired: 8},
	{ID: "meal_delivery", Title: "Meal Delivery Credit", Category: CategoryPartner, TierID: "silver", Cost: 700, LevelRequired: 9},
	{ID: "financial_coaching", Title: "1-on-1 Financial Coaching", Category: CategoryExperience, TierID: "gold", Cost: 1000, LevelRequired: 11},
	{ID: "amazon_voucher_medium", Title: "$25 Amazon Voucher", Category: CategoryPartner, TierID: "gold", Cost: 1200, LevelRequired: 12},
	{ID: "premium_course", Title: "Premium Finance Course", Category: CategoryEducational, TierID: "gold", Cost: 1500, LevelRequired: 13},
	{ID: "amazon_voucher_large", Title: "$50 Amazon Voucher", Category: CategoryPartner, TierID: "platinum", Cost: 2000, LevelRequired: 16},
	{ID: "executive_coaching", Title: "Executive Financial Planning", Category: CategoryExperience, TierID: "platinum", Cost: 2500, LevelRequired: 18},
}

// DailyChallenges returns a fresh, uncompleted set of the daily challenges.
func DailyChallenges() []Challenge {
	return []Challenge{
		{ID: 1, Title: "Track Your Expenses", Description: "Record all your expenses for today", XP: 20},
		{ID: 2, Title: "Read a Financial Article", Description: "Learn something new about personal finance", XP: 15},
		{ID: 3, Title: "Check Your Budget", Description: "Review your monthly budget progress", XP: 10},
	}
}

// DefaultBadges returns the badge set for a new profile.
func DefaultBadges() []Badge {
	return []Badge{
		{ID: "first_login", Name: "First Login", Description: "Logged in for the first time", Unlocked: true},
		{ID: "onboarding_complete", Name: "Quest Begins", Description: "Finished onboarding"},
		{ID: "first_challenge", Name: "Challenge Accepted", Description: "Completed your first challenge"},
		{ID: "first_redemption", Name: "Treat Yourself", Description: "Redeemed your first reward"},
	}
}

// FindGoal looks a goal up by id.
func FindGoal(id string) (Goal, bool) {
	for _, g := range Goals {
		if g.ID == id {
			return g, true
		}
	}
	return Goal{}, false
}

// FindTrait looks a trait up by id.
func FindTrait(id string) (Trait, bool) {
	for _, t := range Traits {
		if t.ID == id {
			return t, true
		}
	}
	return Trait{}, false
}

// FindReward looks a reward up by id.
func FindReward(id string) (Reward, bool) {
	for _, r := range Rewards {
		if r.ID == id {
			return r, true
		}
	}
	return Reward{}, false
}

// LiteracyLabel returns the label for a literacy value, or "" when out of range.
func LiteracyLabel(v int) string {
	for _, l := range LiteracyLevels {
		if l.Value == v {
			return l.Label
		}
	}
	return ""
}
