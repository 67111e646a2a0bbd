package service

import (
	"time"

	"github.com/ReqLens-25-26J-441/req-lens-backend/internal/validation_workflow/domain"
)

// demoSnapshotPatch is the fixed demonstration snapshot stamped onto the
// parent validation after every generation run (see TestCaseService).
func demoSnapshotPatch() domain.ValidationPatch {
	status := domain.StatusComplete
	now := time.Now().UTC()
	score := 87
	compliant := 23
	inconsistencies := 4

	return domain.ValidationPatch{
		Status:            &status,
		CompletedAt:       &now,
		ComplianceScore:   &score,
		CompliantElements: &compliant,
		Inconsistencies:   &inconsistencies,
		Results: &domain.ValidationResults{
			Inconsistencies: []domain.Inconsistency{
				{
					Name:        "Login Form Field Validation",
					Status:      domain.InconsistencyMissing,
					Description: "SRS specifies email validation messaging that is not present in the design",
				},
				{
					Name:        "Product Filter Options",
					Status:      domain.InconsistencyPartial,
					Description: "SRS specifies 5 filter categories, design only shows 3",
				},
				{
					Name:        "Checkout Process Steps",
					Status:      domain.InconsistencyMismatch,
					Description: "SRS specifies 4-step checkout, design shows 3-step process",
				},
			},
		},
	}
}

type catalogEntry struct {
	name        string
	description string
}

// fallbackCatalog feeds the filler generator: ten name/description pairs per
// type, cycled by index when a validation has no inconsistency records.
var fallbackCatalog = map[string][]catalogEntry{
	domain.TypeUI: {
		{"Verify Button Placement", "Check that primary action buttons sit where the requirements position them"},
		{"Verify Form Field Order", "Check that input fields appear in the order the requirements list them"},
		{"Verify Navigation Menu Items", "Check that every menu entry named in the requirements is present"},
		{"Verify Table Column Set", "Check that data tables expose the columns the requirements enumerate"},
		{"Verify Modal Dialog Content", "Check that confirmation dialogs carry the copy the requirements specify"},
		{"Verify Pagination Controls", "Check that list views paginate as the requirements describe"},
		{"Verify Empty State Rendering", "Check that empty collections show the placeholder the requirements define"},
		{"Verify Breadcrumb Trail", "Check that nested pages expose the breadcrumb path the requirements call for"},
		{"Verify Search Input Behavior", "Check that the search box filters results per the requirements"},
		{"Verify Footer Link Set", "Check that footer links match the list in the requirements"},
	},
	domain.TypeFunctional: {
		{"Verify Login Flow", "Check that authentication follows the step sequence the requirements define"},
		{"Verify Checkout Process", "Check that checkout includes every step the requirements specify"},
		{"Verify Password Reset", "Check that the reset flow sends and honors the token per the requirements"},
		{"Verify Cart Calculation", "Check that totals, taxes and discounts follow the requirement formulas"},
		{"Verify Order Confirmation", "Check that placing an order produces the confirmation the requirements describe"},
		{"Verify Profile Update", "Check that account edits persist every field the requirements list"},
		{"Verify Session Timeout", "Check that idle sessions expire after the interval the requirements set"},
		{"Verify Input Validation Rules", "Check that form submission enforces the constraints the requirements define"},
		{"Verify Notification Delivery", "Check that the events named in the requirements trigger notifications"},
		{"Verify Data Export Flow", "Check that exports include the fields and format the requirements demand"},
	},
	domain.TypeUX: {
		{"Verify Onboarding Steps", "Check that first-run guidance covers the topics the requirements outline"},
		{"Verify Error Message Wording", "Check that failures surface the guidance text the requirements specify"},
		{"Verify Loading Feedback", "Check that long operations show progress per the requirements"},
		{"Verify Undo Affordance", "Check that destructive actions offer the recovery path the requirements call for"},
		{"Verify Keyboard Shortcuts", "Check that the shortcuts listed in the requirements are bound"},
		{"Verify Confirmation Prompts", "Check that irreversible actions prompt as the requirements describe"},
		{"Verify Form Autosave", "Check that drafts persist at the cadence the requirements set"},
		{"Verify Tooltip Coverage", "Check that the controls named in the requirements carry explanatory tooltips"},
		{"Verify Mobile Gesture Support", "Check that touch interactions match the requirement descriptions"},
		{"Verify Step Indicator", "Check that multi-step flows show position per the requirements"},
	},
	domain.TypeAccessibility: {
		{"Verify Alt Text Coverage", "Check that meaningful images carry the alternative text the requirements demand"},
		{"Verify Color Contrast", "Check that text meets the contrast ratios the requirements cite"},
		{"Verify Focus Order", "Check that tab traversal follows the order the requirements define"},
		{"Verify ARIA Labeling", "Check that interactive controls expose the labels the requirements list"},
		{"Verify Screen Reader Announcements", "Check that dynamic updates are announced per the requirements"},
		{"Verify Keyboard-Only Operation", "Check that every flow completes without a pointer as the requirements demand"},
		{"Verify Form Error Association", "Check that validation messages are tied to their fields per the requirements"},
		{"Verify Skip Navigation Link", "Check that a skip link precedes repeated navigation as the requirements specify"},
		{"Verify Motion Reduction", "Check that animations honor the reduced-motion preference per the requirements"},
		{"Verify Caption Availability", "Check that media carries the captions the requirements call for"},
	},
	domain.TypeVisual: {
		{"Verify Brand Color Usage", "Check that surfaces use the palette tokens the requirements assign"},
		{"Verify Typography Scale", "Check that headings follow the size scale the requirements define"},
		{"Verify Icon Set Consistency", "Check that icons come from the set the requirements mandate"},
		{"Verify Spacing Grid", "Check that layout spacing follows the grid the requirements describe"},
		{"Verify Logo Placement", "Check that the logo sits and sizes as the requirements specify"},
		{"Verify Card Elevation", "Check that card shadows match the elevation levels the requirements set"},
		{"Verify Image Aspect Ratios", "Check that media crops to the ratios the requirements list"},
		{"Verify Border Radius Tokens", "Check that corner rounding uses the tokens the requirements assign"},
		{"Verify Dark Mode Palette", "Check that the dark theme maps colors per the requirements"},
		{"Verify Chart Color Coding", "Check that chart series use the colors the requirements assign"},
	},
}

// fallbackDesignElements pairs each type with the design surfaces its filler
// cases point at, cycled by index like the catalog.
var fallbackDesignElements = map[string][]string{
	domain.TypeUI:            {"Login Form", "Product Listing", "Navigation Bar", "Data Table", "Modal Dialog", "Pagination", "Empty State", "Breadcrumbs", "Search Bar", "Footer"},
	domain.TypeFunctional:    {"Login Form", "Checkout Flow", "Reset Dialog", "Cart Summary", "Order Banner", "Profile Form", "Session Layer", "Signup Form", "Notification Tray", "Export Dialog"},
	domain.TypeUX:            {"Onboarding Tour", "Error Banner", "Progress Spinner", "Snackbar", "Shortcut Sheet", "Confirm Dialog", "Draft Indicator", "Tooltip Layer", "Touch Targets", "Stepper"},
	domain.TypeAccessibility: {"Hero Image", "Body Text", "Form Controls", "Icon Buttons", "Live Region", "Menu Tree", "Field Errors", "Page Header", "Transition Layer", "Video Player"},
	domain.TypeVisual:        {"Color Tokens", "Heading Stack", "Icon Grid", "Layout Grid", "Header Logo", "Card Surface", "Media Gallery", "Input Corners", "Dark Theme", "Compliance Chart"},
}
