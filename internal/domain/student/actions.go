package student

// Academic actions available to a student. They carry no behaviour yet.

// ViewAvailableCourses lists the courses open for enrolment.
func (s *Student) ViewAvailableCourses() {}

// ViewInvoiceAndPayment shows the tuition invoice and payment history.
func (s *Student) ViewInvoiceAndPayment() {}

// ApplyForScholarship files a scholarship application.
func (s *Student) ApplyForScholarship() {}

// EnrollInCourse enrols the student in a course.
func (s *Student) EnrollInCourse() {}

// ViewAssessmentAndGrades shows assessments and grades.
func (s *Student) ViewAssessmentAndGrades() {}

// DownloadMaterials downloads course materials.
func (s *Student) DownloadMaterials() {}
