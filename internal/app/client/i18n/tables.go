package i18n

import "liquidtrack/internal/domain/issue"

var tables = map[Lang]map[Key]string{
	EN: {
		AppTitle:          "LiquidTrack",
		NewIssue:          "New Issue",
		SearchPlaceholder: "Search issues...",
		ActiveRecords:     "active records",
		EmptyState:        "No issues found. Create a new one to get started.",
		Loading:           "Loading...",

		HeaderIssue:       "Issue",
		HeaderStatus:      "Status",
		HeaderDate:        "Date",
		HeaderResponsible: "Responsible",
		HeaderActions:     "Actions",
		HeaderID:          "ID",
		HeaderName:        "Name",

		ButtonDelete:    "Delete Issue",
		ButtonAISuggest: "Get AI Suggestion",
		ButtonCancel:    "Cancel",
		ButtonCreate:    "Create Record",

		ModalTitle:            "New Issue Record",
		ModalLabelTitle:       "Problem Title",
		ModalPlaceholderTitle: "e.g. Spare part delivery delay",
		ModalLabelDesc:        "Description",
		ModalPlaceholderDesc:  "Describe the situation...",
		ModalLabelResponsible: "Responsible Person",

		ConfirmDelete: "Are you sure you want to delete this record?",

		AuthWelcome:       "Welcome to LiquidTrack",
		AuthSubtitle:      "Sign in to manage logistics issues",
		AuthEmailLabel:    "Email",
		AuthPasswordLabel: "Password",
		AuthSignIn:        "Sign In",
		AuthSignUp:        "Sign Up",
		AuthSignOut:       "Sign Out",
		AuthMicrosoft:     "Sign in with Microsoft",
		AuthErrorParams:   "Check your email and password.",
		AuthSignedIn:      "Signed in as %s",
		AuthSignedUp:      "Account %s created. You can sign in now.",
		AuthSignedOut:     "Signed out.",
		AuthNotSignedIn:   "Not signed in.",
		AuthOpenBrowser:   "Open this address in a browser and finish the Microsoft sign-in:",
		AuthMicrosoftHelp: "Then run: liquidtrack auth microsoft --token <token>",

		ConfigMissingTitle: "Database Connection Missing",
		ConfigMissingBody:  "To enable cloud sync, set STORE_URL and STORE_API_KEY (SUPABASE_URL and SUPABASE_ANON_KEY are accepted too) in the environment, a .env file or config.yaml.",

		MenuPrompt:     "What next?",
		MenuSearch:     "Search",
		MenuFilter:     "Filter by status",
		MenuStatus:     "Change status",
		MenuAssign:     "Change responsible",
		MenuLanguage:   "Русский",
		MenuRefresh:    "Refresh",
		MenuQuit:       "Quit",
		MenuPickIssue:  "Select an issue",
		FilterAll:      "All statuses",
		ErrorLoad:      "Could not load issues. Showing the last known list.",
		ErrorCreate:    "Could not create the issue: %s",
		AnalysisBusy:   "Analysis for this issue is already running.",
		AnalysisActive: "Analyzing issue...",
		AnalysisResult: "AI suggestion: %s",
		IssueCreated:   "Issue created.",
		IssueDeleted:   "Issue deleted.",
		IssueUpdated:   "Issue updated.",
		LanguageSet:    "Language: English",
		WatchHint:      "Watching for changes. Press Ctrl+C to stop.",
		Unassigned:     "—",
	},
	RU: {
		AppTitle:          "LiquidTrack",
		NewIssue:          "Новая задача",
		SearchPlaceholder: "Поиск проблем...",
		ActiveRecords:     "активных задач",
		EmptyState:        "Задач нет. Создайте новую, чтобы начать.",
		Loading:           "Загрузка...",

		HeaderIssue:       "Проблема",
		HeaderStatus:      "Статус",
		HeaderDate:        "Дата",
		HeaderResponsible: "Ответственный",
		HeaderActions:     "Действия",
		HeaderID:          "ID",
		HeaderName:        "Имя",

		ButtonDelete:    "Удалить",
		ButtonAISuggest: "Анализ AI",
		ButtonCancel:    "Отмена",
		ButtonCreate:    "Создать запись",

		ModalTitle:            "Новая запись о проблеме",
		ModalLabelTitle:       "Заголовок проблемы",
		ModalPlaceholderTitle: "например, Задержка запчасти",
		ModalLabelDesc:        "Описание",
		ModalPlaceholderDesc:  "Опишите ситуацию подробно...",
		ModalLabelResponsible: "Ответственный сотрудник",

		ConfirmDelete: "Вы уверены, что хотите удалить эту запись?",

		AuthWelcome:       "Добро пожаловать в LiquidTrack",
		AuthSubtitle:      "Войдите, чтобы управлять логистическими проблемами",
		AuthEmailLabel:    "Email",
		AuthPasswordLabel: "Пароль",
		AuthSignIn:        "Войти",
		AuthSignUp:        "Регистрация",
		AuthSignOut:       "Выйти",
		AuthMicrosoft:     "Войти через Microsoft",
		AuthErrorParams:   "Проверьте email и пароль.",
		AuthSignedIn:      "Вход выполнен: %s",
		AuthSignedUp:      "Учетная запись %s создана. Теперь можно войти.",
		AuthSignedOut:     "Сессия завершена.",
		AuthNotSignedIn:   "Вход не выполнен.",
		AuthOpenBrowser:   "Откройте адрес в браузере и завершите вход через Microsoft:",
		AuthMicrosoftHelp: "Затем выполните: liquidtrack auth microsoft --token <token>",

		ConfigMissingTitle: "Нет подключения к базе данных",
		ConfigMissingBody:  "Для облачной синхронизации задайте STORE_URL и STORE_API_KEY (допускаются SUPABASE_URL и SUPABASE_ANON_KEY) в окружении, файле .env или config.yaml.",

		MenuPrompt:     "Что дальше?",
		MenuSearch:     "Поиск",
		MenuFilter:     "Фильтр по статусу",
		MenuStatus:     "Сменить статус",
		MenuAssign:     "Сменить ответственного",
		MenuLanguage:   "English",
		MenuRefresh:    "Обновить",
		MenuQuit:       "Выход",
		MenuPickIssue:  "Выберите проблему",
		FilterAll:      "Все статусы",
		ErrorLoad:      "Не удалось загрузить проблемы. Показан последний известный список.",
		ErrorCreate:    "Не удалось создать проблему: %s",
		AnalysisBusy:   "Анализ этой проблемы уже выполняется.",
		AnalysisActive: "Анализ проблемы...",
		AnalysisResult: "Совет AI: %s",
		IssueCreated:   "Проблема создана.",
		IssueDeleted:   "Проблема удалена.",
		IssueUpdated:   "Проблема обновлена.",
		LanguageSet:    "Язык: русский",
		WatchHint:      "Отслеживание изменений. Ctrl+C для выхода.",
		Unassigned:     "—",
	},
}

var statuses = map[Lang]map[issue.Status]string{
	EN: {
		issue.StatusNew:        "New",
		issue.StatusInProgress: "In Progress",
		issue.StatusCustoms:    "At Customs",
		issue.StatusDelivery:   "Delivery",
		issue.StatusDone:       "Done",
		issue.StatusStuck:      "Stuck",
	},
	RU: {
		issue.StatusNew:        "Новая",
		issue.StatusInProgress: "В работе",
		issue.StatusCustoms:    "На таможне",
		issue.StatusDelivery:   "Доставка",
		issue.StatusDone:       "Готово",
		issue.StatusStuck:      "Проблема",
	},
}
