package state

// Step identifies a conversation step.
type Step string

const (
	// StepIdle indicates there is no active conversation with the user.
	StepIdle Step = "idle"
	// StepAwaitingName waits for the entity name in the add wizard.
	StepAwaitingName Step = "awaiting_name"
	// StepAwaitingDescription waits for the entity description in the add wizard.
	StepAwaitingDescription Step = "awaiting_description"
	// StepAwaitingLink waits for the entity link in the add wizard.
	StepAwaitingLink Step = "awaiting_link"
	// StepAwaitingPageNumber waits for a page number typed after a jump prompt.
	StepAwaitingPageNumber Step = "awaiting_page_number"
)

// Steps lists every non-idle step a dialog can be in. Bind validates that
// each of them has a handler.
var Steps = []Step{
	StepAwaitingName,
	StepAwaitingDescription,
	StepAwaitingLink,
	StepAwaitingPageNumber,
}

// Page-number prompts are shared between the public browse lists and the
// admin delete lists; Mode records which one opened the prompt.
const (
	ModeBrowse = "browse"
	ModeDelete = "delete"
)

// Session stores the current step and the scratch data collected so far
// for one (user, chat) dialog.
type Session struct {
	Step Step

	// Category is the catalog category key the dialog operates on.
	Category string
	// Mode distinguishes browse and delete page prompts.
	Mode string
	// Name and Description accumulate wizard answers across steps.
	Name        string
	Description string

	// PromptChatID and PromptMessageID reference the paginated message to
	// edit in place after a page jump.
	PromptChatID    int64
	PromptMessageID int
}

type sessionKey struct {
	userID int64
	chatID int64
}
