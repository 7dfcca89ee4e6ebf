package jenkins

const monitorType = "jenkins"

const (
	queueSize = "queue.size"

	buildsStartedLastMinute = "builds.started_builds_last_minute"
	buildsStartedLastHour   = "builds.started_builds_last_hour"

	executorsTotal = "executors.total"
	executorsBusy  = "executors.busy"
	executorsFree  = "executors.free"

	nodesTotal   = "nodes.total"
	nodesOffline = "nodes.offline"
	nodesOnline  = "nodes.online"

	jobsTotal = "jobs.total"
	jobsOK    = "jobs.ok"
	jobsFail  = "jobs.fail"
	jobsWarn  = "jobs.warn"
)

// Per-label metric names, relative to "labels.{label}"
const (
	labelTiedJobs       = "jobs.tiedJobs"
	labelNodesTotal     = "nodes.total"
	labelExecutorsTotal = "executors.total"
	labelExecutorsBusy  = "executors.busy"
	labelExecutorsFree  = "executors.free"
)

// Job colors Jenkins reports for the last build of a job.  Anything else
// (disabled, not built, aborted, in progress) is not classified.
const (
	colorOK   = "blue"
	colorFail = "red"
	colorWarn = "yellow"
)

// Endpoints relative to the Jenkins base URL
const (
	queueEndpoint    = "queue"
	computerEndpoint = "computer"
	labelEndpoint    = "label/%s"
	viewEndpoint     = "view/%s"
	timelineEndpoint = "view/All/timeline/data?min=%d&max=%d"
)
