package styles

import (
	"github.com/charmbracelet/lipgloss"
)

// Layout constants
const (
	// Textarea
	MinTextareaHeight    = 2
	DefaultTextareaWidth = 80
	TextAreaPaddingLeft  = 1

	// Viewport
	MinViewportHeight = 1

	// Layout
	InputBorderHeight  = 2
	HeaderHeight       = 2
	SidebarWidth       = 24
	MessagePaddingLeft = 2

	// Logout dialog
	ConfirmPaddingHorizontal = 4
	ConfirmPaddingVertical   = 1
)

// Color palette, after the dashboard's indigo theme.
var (
	PrimaryColor   = lipgloss.Color("#4F46E5") // Indigo
	SecondaryColor = lipgloss.Color("#06B6D4") // Cyan
	AccentColor    = lipgloss.Color("#F59E0B") // Amber
	SuccessColor   = lipgloss.Color("#10B981") // Green
	ErrorColor     = lipgloss.Color("#EF4444") // Red
	TextColor      = lipgloss.Color("#F9FAFB") // Light gray
	DimTextColor   = lipgloss.Color("#9CA3AF") // Dim gray
	BorderColor    = lipgloss.Color("#4B5563")
	PanelBgColor   = lipgloss.Color("#1A1D29")
)

// Header and title bar.
var (
	TitleStyle = lipgloss.NewStyle().
			Background(PrimaryColor).
			Foreground(TextColor).
			Bold(true)

	HeaderUserStyle = lipgloss.NewStyle().
			Foreground(DimTextColor).
			Background(PrimaryColor)
)

// Sidebar.
var (
	SidebarStyle = lipgloss.NewStyle().
			Width(SidebarWidth).
			Padding(1, 2).
			Border(lipgloss.NormalBorder(), false, true, false, false).
			BorderForeground(BorderColor)

	MenuItemStyle = lipgloss.NewStyle().
			Foreground(DimTextColor)

	MenuItemActiveStyle = lipgloss.NewStyle().
				Foreground(TextColor).
				Background(PrimaryColor).
				Bold(true)

	MenuItemCursorStyle = lipgloss.NewStyle().
				Foreground(SecondaryColor).
				Bold(true)
)

// Messages.
var (
	messageStyle = lipgloss.NewStyle().
			Foreground(TextColor).
			Padding(0, 1).
			Border(lipgloss.RoundedBorder())

	UserMessageStyle = lipgloss.NewStyle().
				Inherit(messageStyle).
				BorderForeground(PrimaryColor).
				MarginLeft(10)

	AssistantMessageStyle = lipgloss.NewStyle().
				Inherit(messageStyle).
				BorderForeground(SecondaryColor).
				MarginRight(10)

	UserLabelStyle = lipgloss.NewStyle().
			Foreground(SuccessColor).
			Bold(true)

	AssistantLabelStyle = lipgloss.NewStyle().
				Foreground(SecondaryColor).
				Bold(true)
)

// Input and chrome.
var (
	TextAreaStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(BorderColor).
			PaddingLeft(TextAreaPaddingLeft)

	ViewportStyle = lipgloss.NewStyle()

	SpinnerStyle = lipgloss.NewStyle().
			Foreground(PrimaryColor)

	TypingStyle = lipgloss.NewStyle().
			Foreground(DimTextColor).
			Italic(true)

	HelpStyle = lipgloss.NewStyle().
			Foreground(DimTextColor)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ErrorColor).
			Bold(true)

	PlaceholderStyle = lipgloss.NewStyle().
				Foreground(DimTextColor).
				Italic(true).
				Padding(1, 2)
)

// Login page.
var (
	LoginBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(PrimaryColor).
			Padding(1, 4)

	LoginTitleStyle = lipgloss.NewStyle().
			Foreground(TextColor).
			Bold(true)

	LoginSubtitleStyle = lipgloss.NewStyle().
				Foreground(DimTextColor)
)

// Logout confirmation dialog.
var (
	ConfirmBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ErrorColor).
			Padding(ConfirmPaddingVertical, ConfirmPaddingHorizontal).
			Align(lipgloss.Center)

	ConfirmTitleStyle = lipgloss.NewStyle().
				Foreground(TextColor).
				Bold(true)

	ConfirmOptionStyle = lipgloss.NewStyle().
				Padding(0, 2).
				Foreground(DimTextColor)

	ConfirmSelectedStyle = lipgloss.NewStyle().
				Padding(0, 2).
				Foreground(TextColor).
				Background(ErrorColor).
				Bold(true)
)
