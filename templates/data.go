package templates

// NavData drives the sidebar.
type NavData struct {
	Proposals []ProposalLink
	ActiveID  string
}

type ProposalLink struct {
	ID        string
	Client    string
	ModeLabel string
}

type ModeOption struct {
	Value    string
	Label    string
	Selected bool
}

type ProposalSummary struct {
	ID        string
	Client    string
	ModeLabel string
	Created   string
	Rooms     int
}

// ProposalListData holds the home page: existing drafts plus the create form.
type ProposalListData struct {
	Proposals []ProposalSummary
	Modes     []ModeOption
	Client    string
	Signatory string
	Errors    map[string]string
}

type PackageOption struct {
	Name  string
	Label string
}

type RoomRow struct {
	ID             string
	Name           string
	Distance       string
	Classification string
	Upfront        string
	ManagedService string
	Year1          string
	Error          string
}

type AddOnRow struct {
	Item        string
	Description string
	UnitPrice   string
	Qty         int
	Total       string
}

// ProposalViewData holds the room builder page for one draft.
type ProposalViewData struct {
	ID         string
	Client     string
	Mode       string
	ModeLabel  string
	Signatory  string
	Rooms      []RoomRow
	Packages   []PackageOption
	AddOns     []AddOnRow
	Upfront    string
	Managed    string
	GrandTotal string
	Status     string
	LastOutput string
	Errors     map[string]string
}
