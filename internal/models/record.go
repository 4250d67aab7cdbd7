package models

// 데모 요청 레코드, 생성 후 변경되지 않음
type SubmissionRecord struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	Date        string `json:"date"`
	Time        string `json:"time"`
	Practice    string `json:"practice"`
	Phone       string `json:"phone"`
	SubmittedAt string `json:"submittedAt"`
}

func (r SubmissionRecord) RecordID() string { return r.ID }

func (r SubmissionRecord) CSVHeader() []string {
	return []string{"ID", "Name", "Email", "Phone", "Practice", "Preferred Date", "Preferred Time", "Submitted At"}
}

func (r SubmissionRecord) CSVRow() []string {
	return []string{r.ID, r.Name, r.Email, r.Phone, r.Practice, r.Date, r.Time, r.SubmittedAt}
}

// 콜백 요청 레코드
type CallRequestRecord struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Phone         string `json:"phone"`
	Practice      string `json:"practice"`
	PreferredTime string `json:"preferredTime"`
	Urgency       string `json:"urgency"`
	SubmittedAt   string `json:"submittedAt"`
}

func (r CallRequestRecord) RecordID() string { return r.ID }

func (r CallRequestRecord) CSVHeader() []string {
	return []string{"ID", "Name", "Phone", "Practice", "Best Time to Call", "Priority", "Submitted At"}
}

func (r CallRequestRecord) CSVRow() []string {
	return []string{r.ID, r.Name, r.Phone, r.Practice, r.PreferredTime, r.Urgency, r.SubmittedAt}
}
