package models

type User struct {
	ID          int    `json:"id"`
	Surname     string `json:"surname"`
	FirstName   string `json:"first_name"`
	Patronymic  string `json:"patronymic,omitempty"`
	PhoneNumber string `json:"phone_number"`
	Login       string `json:"login"`
	Password    string `json:"-"`
}

type UserProfile struct {
	Message     string `json:"message"`
	UserID      int    `json:"user_id"`
	FullName    string `json:"full_name"`
	PhoneNumber string `json:"phone_number"`
	Token       string `json:"token,omitempty"`
}
