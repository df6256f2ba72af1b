package i18n

type Key string

const (
	AppTitle          Key = "appTitle"
	NewIssue          Key = "newIssue"
	SearchPlaceholder Key = "searchPlaceholder"
	ActiveRecords     Key = "activeRecords"
	EmptyState        Key = "emptyState"
	Loading           Key = "loading"

	HeaderIssue       Key = "tableHeaders.issue"
	HeaderStatus      Key = "tableHeaders.status"
	HeaderDate        Key = "tableHeaders.date"
	HeaderResponsible Key = "tableHeaders.responsible"
	HeaderActions     Key = "tableHeaders.actions"
	HeaderID          Key = "tableHeaders.id"
	HeaderName        Key = "tableHeaders.name"

	ButtonDelete    Key = "buttons.delete"
	ButtonAISuggest Key = "buttons.aiSuggest"
	ButtonCancel    Key = "buttons.cancel"
	ButtonCreate    Key = "buttons.create"

	ModalTitle            Key = "modal.title"
	ModalLabelTitle       Key = "modal.labelTitle"
	ModalPlaceholderTitle Key = "modal.placeholderTitle"
	ModalLabelDesc        Key = "modal.labelDesc"
	ModalPlaceholderDesc  Key = "modal.placeholderDesc"
	ModalLabelResponsible Key = "modal.labelResponsible"

	ConfirmDelete Key = "confirmDelete"

	AuthWelcome       Key = "auth.welcome"
	AuthSubtitle      Key = "auth.subtitle"
	AuthEmailLabel    Key = "auth.emailLabel"
	AuthPasswordLabel Key = "auth.passwordLabel"
	AuthSignIn        Key = "auth.signIn"
	AuthSignUp        Key = "auth.signUp"
	AuthSignOut       Key = "auth.signOut"
	AuthMicrosoft     Key = "auth.microsoftBtn"
	AuthErrorParams   Key = "auth.errorParams"
	AuthSignedIn      Key = "auth.signedIn"
	AuthSignedUp      Key = "auth.signedUp"
	AuthSignedOut     Key = "auth.signedOut"
	AuthNotSignedIn   Key = "auth.notSignedIn"
	AuthOpenBrowser   Key = "auth.openBrowser"
	AuthMicrosoftHelp Key = "auth.microsoftHelp"

	ConfigMissingTitle Key = "config.missingTitle"
	ConfigMissingBody  Key = "config.missingBody"

	MenuPrompt     Key = "menu.prompt"
	MenuSearch     Key = "menu.search"
	MenuFilter     Key = "menu.filter"
	MenuStatus     Key = "menu.status"
	MenuAssign     Key = "menu.assign"
	MenuLanguage   Key = "menu.language"
	MenuRefresh    Key = "menu.refresh"
	MenuQuit       Key = "menu.quit"
	MenuPickIssue  Key = "menu.pickIssue"
	FilterAll      Key = "filter.all"
	ErrorLoad      Key = "error.load"
	ErrorCreate    Key = "error.create"
	AnalysisBusy   Key = "analysis.busy"
	AnalysisActive Key = "analysis.active"
	AnalysisResult Key = "analysis.result"
	IssueCreated   Key = "issue.created"
	IssueDeleted   Key = "issue.deleted"
	IssueUpdated   Key = "issue.updated"
	LanguageSet    Key = "language.set"
	WatchHint      Key = "watch.hint"
	Unassigned     Key = "unassigned"
)
