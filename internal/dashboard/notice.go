package dashboard

// Variant selects how a Notice is presented.
type Variant string

const (
	VariantDefault     Variant = "default"
	VariantDestructive Variant = "destructive"
)

// Notice is a transient message shown to the user after an action.
type Notice struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Variant     Variant `json:"variant"`
}

// Success returns a default notice.
func Success(description string) *Notice {
	return &Notice{Title: "Success", Description: description, Variant: VariantDefault}
}

// Failure returns a destructive notice.
func Failure(description string) *Notice {
	return &Notice{Title: "Error", Description: description, Variant: VariantDestructive}
}
