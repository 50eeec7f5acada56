package record

// ProjectContribution pairs a recipient with one of its contribution records,
// from the point of view of the paying project.
type ProjectContribution struct {
	Recipient    *Recipient
	Contribution Contribution
}

// Dataset is the immutable in-memory snapshot of the record store.
//
// It is built once (Store.Load for production, NewDataset for fixtures) and
// shared read-only by every view request. No engine component mutates it.
type Dataset struct {
	fiscalYear int
	ministries []Ministry
	projects   []Project
	recipients []Recipient
	stats      []MinistryStats

	ministryByName   map[string]*Ministry
	projectByID      map[int]*Project
	projectsByName   map[string][]*Project
	projectsByMin    map[string][]*Project
	recipientByID    map[int]*Recipient
	recipientsByName map[string][]*Recipient
	paymentsByProj   map[int][]ProjectContribution
	statsByMinistry  map[string]MinistryStats

	totalBudget float64
}

// NewDataset builds a Dataset with all lookup indexes from raw record slices.
// Slice order is preserved as the stable input order.
func NewDataset(fiscalYear int, ministries []Ministry, projects []Project, recipients []Recipient, stats []MinistryStats) *Dataset {
	ds := &Dataset{
		fiscalYear:       fiscalYear,
		ministries:       ministries,
		projects:         projects,
		recipients:       recipients,
		stats:            stats,
		ministryByName:   make(map[string]*Ministry, len(ministries)),
		projectByID:      make(map[int]*Project, len(projects)),
		projectsByName:   make(map[string][]*Project),
		projectsByMin:    make(map[string][]*Project),
		recipientByID:    make(map[int]*Recipient, len(recipients)),
		recipientsByName: make(map[string][]*Recipient),
		paymentsByProj:   make(map[int][]ProjectContribution),
		statsByMinistry:  make(map[string]MinistryStats, len(stats)),
	}

	for i := range ds.ministries {
		m := &ds.ministries[i]
		ds.ministryByName[CanonicalName(m.Name)] = m
		ds.totalBudget += m.TotalBudget
	}

	for i := range ds.projects {
		p := &ds.projects[i]
		ds.projectByID[p.ProjectID] = p
		name := CanonicalName(p.ProjectName)
		ds.projectsByName[name] = append(ds.projectsByName[name], p)
		min := CanonicalName(p.Ministry)
		ds.projectsByMin[min] = append(ds.projectsByMin[min], p)
	}

	for i := range ds.recipients {
		r := &ds.recipients[i]
		ds.recipientByID[r.SpendingID] = r
		name := CanonicalName(r.SpendingName)
		ds.recipientsByName[name] = append(ds.recipientsByName[name], r)
		for _, c := range r.Projects {
			ds.paymentsByProj[c.ProjectID] = append(ds.paymentsByProj[c.ProjectID], ProjectContribution{
				Recipient:    r,
				Contribution: c,
			})
		}
	}

	for _, st := range ds.stats {
		ds.statsByMinistry[CanonicalName(st.Ministry)] = st
	}

	return ds
}

// FiscalYear returns the dataset's fiscal year.
func (ds *Dataset) FiscalYear() int { return ds.fiscalYear }

// Ministries returns all ministries in stable input order.
// Callers must not mutate the returned slice.
func (ds *Dataset) Ministries() []Ministry { return ds.ministries }

// Projects returns all projects in stable input order.
func (ds *Dataset) Projects() []Project { return ds.projects }

// Recipients returns all recipients in stable input order.
func (ds *Dataset) Recipients() []Recipient { return ds.recipients }

// TotalBudget returns the grand total budget (sum over all ministries).
func (ds *Dataset) TotalBudget() float64 { return ds.totalBudget }

// MinistryByName looks up a ministry by canonicalized display name.
func (ds *Dataset) MinistryByName(name string) (*Ministry, bool) {
	m, ok := ds.ministryByName[CanonicalName(name)]
	return m, ok
}

// ProjectByID looks up a project by id.
func (ds *Dataset) ProjectByID(id int) (*Project, bool) {
	p, ok := ds.projectByID[id]
	return p, ok
}

// ProjectByName looks up a project by canonicalized display name.
// When several ministries run a project under the same name, the one with the
// lowest project id wins; input order is id-ascending so that is the first.
func (ds *Dataset) ProjectByName(name string) (*Project, bool) {
	ps := ds.projectsByName[CanonicalName(name)]
	if len(ps) == 0 {
		return nil, false
	}
	return ps[0], true
}

// ProjectsOfMinistry returns the ministry's projects in stable input order.
func (ds *Dataset) ProjectsOfMinistry(ministryName string) []*Project {
	return ds.projectsByMin[CanonicalName(ministryName)]
}

// RecipientByID looks up a recipient by spending id.
func (ds *Dataset) RecipientByID(id int) (*Recipient, bool) {
	r, ok := ds.recipientByID[id]
	return r, ok
}

// RecipientsByName returns every recipient record carrying the canonicalized
// name. Multiple records per name are normal: the reserved "その他" payee in
// particular appears once per paying context in the source data.
func (ds *Dataset) RecipientsByName(name string) []*Recipient {
	return ds.recipientsByName[CanonicalName(name)]
}

// PaymentsOfProject returns every (recipient, contribution) pair paid by the
// project, in recipient input order.
func (ds *Dataset) PaymentsOfProject(projectID int) []ProjectContribution {
	return ds.paymentsByProj[projectID]
}

// StatsOfMinistry returns the precomputed per-ministry spending aggregate.
func (ds *Dataset) StatsOfMinistry(ministryName string) (MinistryStats, bool) {
	st, ok := ds.statsByMinistry[CanonicalName(ministryName)]
	return st, ok
}
