package handler

import "time"

// RFC 3339 타임스탬프를 관리자 화면용으로 변환
func displayTime(s string) string {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return s
	}
	return t.Local().Format("2006-01-02 15:04:05")
}
