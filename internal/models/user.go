package models

// 관리자 계정, 환경 변수에서 로드됨
type AdminUser struct {
	Username     string `json:"username"`
	PasswordHash string `json:"-"`
}
