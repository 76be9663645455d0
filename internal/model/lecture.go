package model

import "time"

// Lecture represents a course offering that students can try out.
// A lecture is an opaque grouping key for its sessions: all
// scheduling and capacity decisions happen at the session level.
// This struct corresponds to a row in the `lectures` table.
//
// Fields:
//  ID           – primary key identifier.
//  Title        – lecture title shown to students.
//  Description  – free-form description of the lecture.
//  TeacherName  – name of the teacher giving the lecture.
//  LocationName – building or room where sessions take place.
//  PDFURL       – optional URL of a descriptive PDF (nil if none).
//  MaxCapacity  – advertised total capacity across sessions.
//  CreatedAt    – timestamp when the lecture was created.
//  UpdatedAt    – timestamp of last update.
type Lecture struct {
    ID           uint64    // lectures.id
    Title        string    // lectures.title
    Description  string    // lectures.description
    TeacherName  string    // lectures.teacher_name
    LocationName string    // lectures.location_name
    PDFURL       *string   // lectures.pdf_url (nullable)
    MaxCapacity  uint32    // lectures.max_capacity
    CreatedAt    time.Time // lectures.created_at
    UpdatedAt    time.Time // lectures.updated_at
}
