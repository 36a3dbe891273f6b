package dto

// CertificateDTO is both the "ineligible, with reason" soft result and the full
// certificate payload once issued. Ineligibility is a normal outcome, not an error.
type CertificateDTO struct {
	Eligible          bool   `json:"eligible"`
	Reason            string `json:"reason,omitempty"`
	CertificateNumber string `json:"certificate_number,omitempty"`
	StudentName       string `json:"student_name,omitempty"`
	InstructorName    string `json:"instructor_name,omitempty"`
	CourseTitle       string `json:"course_title,omitempty"`
	IssueDate         string `json:"issue_date,omitempty"`
}
