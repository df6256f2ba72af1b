package oauth

type loginInput struct {
	Redirect string `query:"redirect" doc:"URL клиента, куда вернуть токен (необязательно)"`
}

type redirectOutput struct {
	Status   int
	Location string `header:"Location"`
}

type callbackInput struct {
	Code  string `query:"code"`
	State string `query:"state"`
	Error string `query:"error"`
}

type callbackOutput struct {
	Body CallbackResponse
}

type CallbackResponse struct {
	Token  string `json:"token" doc:"Токен сессии для liquidtrack auth microsoft --token"`
	Login  string `json:"login"`
	Status string `json:"status"`
}

type graphUser struct {
	Mail              string `json:"mail"`
	UserPrincipalName string `json:"userPrincipalName"`
}
