// Package student contains the Student persona of the academic registry.
//
// # Construction
//
// New is the full construction path. It initialises the embedded
// person.Person, assigns the middle name and every academic attribute
// through their validating setters and, only when all of them succeed,
// registers the Student in the Person extent and in the Student extent:
//
//	s, err := student.New(student.Params{
//	    Name:            "John",
//	    Surname:         "Doe",
//	    BirthDate:       timeutil.Date(2000, time.January, 1),
//	    Email:           "john@example.com",
//	    StudentNumber:   123,
//	    AccountBalance:  decimal.NewFromInt(200),
//	    YearOfStudy:     3,
//	    GPA:             2.5,
//	    CurrentSemester: 2,
//	    Attendance:      90,
//	})
//
// Empty is the default construction path for deserialization. It skips
// validation and registration; Register validates and registers later.
//
// # Extent
//
// Extent returns a read-only view. Its Add, RemoveAt, Set and Clear methods
// always fail with shared.ErrReadOnly. ResetExtent empties the extent.
//
// # Persistence
//
// Save and Load use the students.txt format, one line per Student:
//
//	name;middleName;surname;email;YYYY-MM-DD;studentNumber;accountBalance;yearOfStudy;gpa;currentSemester;attendance
//
// The Person columns are duplicated in students.txt; persons.txt is never
// touched. SaveTo and LoadFrom do the same through any Store.
package student
