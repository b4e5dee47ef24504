package domain

// LeadStatus is the triage state of a lead. The state space is a flat
// enumeration: staff may move a lead from any status to any other.
type LeadStatus string

const (
	StatusNew       LeadStatus = "new"
	StatusContacted LeadStatus = "contacted"
	StatusQualified LeadStatus = "qualified"
	StatusClosed    LeadStatus = "closed"
)

// LeadStatuses returns all statuses in pipeline order.
func LeadStatuses() []LeadStatus {
	return []LeadStatus{StatusNew, StatusContacted, StatusQualified, StatusClosed}
}

// Valid reports whether s is a known status.
func (s LeadStatus) Valid() bool {
	switch s {
	case StatusNew, StatusContacted, StatusQualified, StatusClosed:
		return true
	}
	return false
}

// LeadSource is the fixed provenance tag stamped on every lead created
// through the public consultation form.
const LeadSource = "website"
