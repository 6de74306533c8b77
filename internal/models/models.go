package models

import "encoding/json"

// Document keys shared by the API payloads and the stores.
const (
	KeyID = "_id"

	KeyOwnerEmail  = "addJobOwnerEmail"
	KeyTitle       = "title"
	KeyCompany     = "company"
	KeyCompanyLogo = "company_logo"
	KeyLocation    = "location"

	KeyApplicantEmail = "applicantEmail"
	KeyJobID          = "jobId"

	// Copied onto an application from its job at read time.
	KeyJobTitle    = "jobTitle"
	KeyCompanyName = "companyName"
)

// Job is a posted job listing. Fields holds every attribute the caller sent
// besides the known ones.
type Job struct {
	ID          string
	OwnerEmail  string
	Title       string
	Company     string
	CompanyLogo string
	Location    string
	Fields      map[string]any
}

// JobFromDocument splits a raw document into known fields and the rest.
// A known key with a non-string value stays in Fields untouched.
func JobFromDocument(doc map[string]any) Job {
	rest := cloneFields(doc)
	return Job{
		ID:          takeString(rest, KeyID),
		OwnerEmail:  takeString(rest, KeyOwnerEmail),
		Title:       takeString(rest, KeyTitle),
		Company:     takeString(rest, KeyCompany),
		CompanyLogo: takeString(rest, KeyCompanyLogo),
		Location:    takeString(rest, KeyLocation),
		Fields:      rest,
	}
}

// Document returns the stored form of the job, without its identifier.
func (j Job) Document() map[string]any {
	doc := cloneFields(j.Fields)
	delete(doc, KeyID)
	putString(doc, KeyOwnerEmail, j.OwnerEmail)
	putString(doc, KeyTitle, j.Title)
	putString(doc, KeyCompany, j.Company)
	putString(doc, KeyCompanyLogo, j.CompanyLogo)
	putString(doc, KeyLocation, j.Location)
	return doc
}

func (j Job) MarshalJSON() ([]byte, error) {
	doc := j.Document()
	putString(doc, KeyID, j.ID)
	return json.Marshal(doc)
}

func (j *Job) UnmarshalJSON(data []byte) error {
	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}
	*j = JobFromDocument(doc)
	return nil
}

// Application is one applicant's submission against a job. JobID is a weak
// reference: nothing guarantees the job still exists.
type Application struct {
	ID             string
	ApplicantEmail string
	JobID          string
	Fields         map[string]any
}

func ApplicationFromDocument(doc map[string]any) Application {
	rest := cloneFields(doc)
	return Application{
		ID:             takeString(rest, KeyID),
		ApplicantEmail: takeString(rest, KeyApplicantEmail),
		JobID:          takeString(rest, KeyJobID),
		Fields:         rest,
	}
}

func (a Application) Document() map[string]any {
	doc := cloneFields(a.Fields)
	delete(doc, KeyID)
	putString(doc, KeyApplicantEmail, a.ApplicantEmail)
	putString(doc, KeyJobID, a.JobID)
	return doc
}

// Enrich overwrites the application's display fields with the job's. A field
// the job lacks is removed rather than left at the application's own value.
func (a *Application) Enrich(job Job) {
	if a.Fields == nil {
		a.Fields = make(map[string]any, 4)
	}
	replaceString(a.Fields, KeyJobTitle, job.Title)
	replaceString(a.Fields, KeyCompanyName, job.Company)
	replaceString(a.Fields, KeyLocation, job.Location)
	replaceString(a.Fields, KeyCompanyLogo, job.CompanyLogo)
}

func (a Application) MarshalJSON() ([]byte, error) {
	doc := a.Document()
	putString(doc, KeyID, a.ID)
	return json.Marshal(doc)
}

func (a *Application) UnmarshalJSON(data []byte) error {
	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}
	*a = ApplicationFromDocument(doc)
	return nil
}

func takeString(m map[string]any, key string) string {
	s, ok := m[key].(string)
	if !ok || s == "" {
		// left in m so an explicit "" survives a round trip
		return ""
	}
	delete(m, key)
	return s
}

func putString(m map[string]any, key, value string) {
	if value != "" {
		m[key] = value
	}
}

func replaceString(m map[string]any, key, value string) {
	if value == "" {
		delete(m, key)
		return
	}
	m[key] = value
}

func cloneFields(src map[string]any) map[string]any {
	dst := make(map[string]any, len(src)+6)
	for k, v := range src {
		dst[k] = v
	}
	return dst
}
