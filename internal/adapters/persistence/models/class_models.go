package models

import (
	"strings"
	"time"
)

// ============================================================
// Courses, class sessions and attendance
// ============================================================

// Course represents courses table
type Course struct {
	ID           uint        `gorm:"primaryKey" json:"id"`
	CourseCode   string      `gorm:"uniqueIndex;size:20;not null" json:"course_code"`
	CourseName   string      `gorm:"size:120;not null" json:"course_name"`
	InstructorID uint        `gorm:"index;not null" json:"-"`
	CreatedAt    time.Time   `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time   `gorm:"autoUpdateTime" json:"updated_at"`
	Instructor   *Instructor `gorm:"foreignKey:InstructorID" json:"-"`
}

func (Course) TableName() string {
	return "courses"
}

// CourseResponse DTO
type CourseResponse struct {
	ID         uint      `json:"id"`
	CourseCode string    `json:"course_code"`
	CourseName string    `json:"course_name"`
	StaffID    uint      `json:"staff_id,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

func (c *Course) ToResponse() *CourseResponse {
	resp := &CourseResponse{
		ID:         c.ID,
		CourseCode: c.CourseCode,
		CourseName: c.CourseName,
		CreatedAt:  c.CreatedAt,
	}
	if c.Instructor != nil {
		resp.StaffID = c.Instructor.StaffID
	}
	return resp
}

// ClassSession represents class_sessions table. Days holds a comma
// separated list of weekday abbreviations ("Mon,Wed").
type ClassSession struct {
	ID           uint        `gorm:"primaryKey" json:"id"`
	CourseID     uint        `gorm:"index;not null" json:"course_id"`
	InstructorID uint        `gorm:"index;not null" json:"-"`
	Venue        string      `gorm:"size:120" json:"venue"`
	StartTime    time.Time   `gorm:"not null" json:"start_time"`
	EndTime      time.Time   `gorm:"not null" json:"end_time"`
	Days         string      `gorm:"size:64" json:"-"`
	CreatedAt    time.Time   `gorm:"autoCreateTime" json:"created_at"`
	Course       *Course     `gorm:"foreignKey:CourseID" json:"-"`
	Instructor   *Instructor `gorm:"foreignKey:InstructorID" json:"-"`
}

func (ClassSession) TableName() string {
	return "class_sessions"
}

// DayList splits Days into its entries
func (s *ClassSession) DayList() []string {
	if s.Days == "" {
		return []string{}
	}
	return strings.Split(s.Days, ",")
}

// ClassSessionResponse DTO
type ClassSessionResponse struct {
	ID         uint      `json:"id"`
	CourseID   uint      `json:"course_id"`
	CourseCode string    `json:"course_code,omitempty"`
	StaffID    uint      `json:"staff_id,omitempty"`
	Venue      string    `json:"venue"`
	StartTime  time.Time `json:"start_time"`
	EndTime    time.Time `json:"end_time"`
	Days       []string  `json:"days"`
}

func (s *ClassSession) ToResponse() *ClassSessionResponse {
	resp := &ClassSessionResponse{
		ID:        s.ID,
		CourseID:  s.CourseID,
		Venue:     s.Venue,
		StartTime: s.StartTime,
		EndTime:   s.EndTime,
		Days:      s.DayList(),
	}
	if s.Course != nil {
		resp.CourseCode = s.Course.CourseCode
	}
	if s.Instructor != nil {
		resp.StaffID = s.Instructor.StaffID
	}
	return resp
}

// Attendance represents attendance table. The composite unique index is
// what keeps concurrent marks from producing two rows.
type Attendance struct {
	ID         uint          `gorm:"primaryKey" json:"id"`
	StudentID  uint          `gorm:"uniqueIndex:idx_attendance_student_session;not null" json:"-"`
	SessionID  uint          `gorm:"uniqueIndex:idx_attendance_student_session;index;not null" json:"session_id"`
	Status     string        `gorm:"size:10;not null" json:"status"`
	RecordedAt time.Time     `gorm:"not null" json:"recorded_at"`
	MarkedBy   string        `gorm:"size:32" json:"marked_by"`
	CreatedAt  time.Time     `gorm:"autoCreateTime" json:"created_at"`
	Student    *Student      `gorm:"foreignKey:StudentID" json:"-"`
	Session    *ClassSession `gorm:"foreignKey:SessionID" json:"-"`
}

func (Attendance) TableName() string {
	return "attendance"
}

// AttendanceResponse DTO
type AttendanceResponse struct {
	ID         uint      `json:"id"`
	Student    string    `json:"student"`
	Session    uint      `json:"session"`
	Status     string    `json:"status"`
	RecordedAt time.Time `json:"recorded_at"`
	MarkedBy   string    `json:"marked_by,omitempty"`
}

func (a *Attendance) ToResponse() *AttendanceResponse {
	resp := &AttendanceResponse{
		ID:         a.ID,
		Session:    a.SessionID,
		Status:     a.Status,
		RecordedAt: a.RecordedAt,
		MarkedBy:   a.MarkedBy,
	}
	if a.Student != nil {
		resp.Student = a.Student.RegNo
	}
	return resp
}

// AttendanceResponses converts a slice for JSON output
func AttendanceResponses(records []*Attendance) []*AttendanceResponse {
	out := make([]*AttendanceResponse, 0, len(records))
	for _, r := range records {
		out = append(out, r.ToResponse())
	}
	return out
}
