package issue

import "liquidtrack/internal/domain/issue"

type listInput struct {
	Query  string `query:"q" doc:"Поиск по заголовку и описанию"`
	Status string `query:"status" doc:"Фильтр по статусу"`
	Since  string `query:"since" doc:"Только созданные не раньше (RFC 3339)"`
	Order  string `query:"order" default:"created_at.desc" doc:"Сортировка: поле.asc|desc"`
}

type listOutput struct {
	Body []issue.Issue
}

type createInput struct {
	Body issue.NewIssue
}

type issueOutput struct {
	Body issue.Issue
}

type updateInput struct {
	ID   string `path:"id" doc:"Идентификатор проблемы"`
	Body issue.Patch
}

type deleteInput struct {
	ID string `path:"id" doc:"Идентификатор проблемы"`
}
