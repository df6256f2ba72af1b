package user

import "time"

type User struct {
	ID        int
	Login     string
	Password  string // хэш, пустой у учетных записей только через Microsoft
	CreatedAt time.Time
}

// Credentials - тело запросов регистрации и входа.
type Credentials struct {
	Login    string `json:"login" doc:"Email пользователя" minLength:"3" maxLength:"254"`
	Password string `json:"password" doc:"Пароль" minLength:"1" maxLength:"72"`
}
