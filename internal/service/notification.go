package service

import (
	"bytes"
	"html/template"
	"strings"

	"lavtracker/backend/internal/model"
)

// 邮件主题
const (
	subjectInspectionFailed   = "LavTracker - Inspection Failed"
	subjectInspectionReminder = "LavTracker - Inspection Reminder"
)

var inspectionEmailTmpl = template.Must(template.New("inspection").Parse(`<h2>{{.Title}}</h2>
<p>Branch: {{.Branch}}</p>
<p>Location: {{.Location}}</p>
<p>Bathroom: {{.Bathroom}}</p>
<p>Status: {{.Status}}</p>
<p>Inspected at: {{.InspectedAt}}</p>
<ul>{{range .Items}}<li>{{.}}</li>{{end}}</ul>
{{if .ImageURL}}<p>Image: <a href="{{.ImageURL}}">{{.ImageURL}}</a></p>{{end}}`))

type inspectionEmail struct {
	Title       string
	Branch      string
	Location    string
	Bathroom    string
	Status      string
	InspectedAt string
	Items       []string
	ImageURL    string
}

// renderInspectionEmail 渲染巡检告警 / 提醒邮件正文
// bathroom 需预加载 Location.Branch
func renderInspectionEmail(title string, bathroom *model.Bathroom, insp *model.Inspection, baseURL string) (string, error) {
	data := inspectionEmail{
		Title:       title,
		Bathroom:    bathroom.Name,
		Status:      model.BathroomStatusInspected,
		InspectedAt: insp.InspectionDate.Format("2006-01-02 15:04 MST"),
	}
	if loc := bathroom.Location; loc != nil {
		data.Location = loc.Name
		if loc.Branch != nil {
			data.Branch = loc.Branch.Name
		}
	}
	for _, item := range insp.Items {
		data.Items = append(data.Items, item.Reason)
	}
	if insp.ImageURL != "" {
		data.ImageURL = strings.TrimRight(baseURL, "/") + insp.ImageURL
	}

	var buf bytes.Buffer
	if err := inspectionEmailTmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// recipients 解析通知收件人：分支 to 列表加卫生间自身的通知邮箱，cc 取分支 cc 列表
func recipients(bathroom *model.Bathroom) (to, cc []string) {
	if bathroom.Location != nil && bathroom.Location.Branch != nil {
		branch := bathroom.Location.Branch
		to = splitEmails(branch.ToNotificationEmails)
		cc = splitEmails(branch.CcNotificationEmails)
	}
	if bathroom.NotificationEmail != nil {
		extra := strings.TrimSpace(*bathroom.NotificationEmail)
		if extra != "" && !containsFold(to, extra) {
			to = append(to, extra)
		}
	}
	return to, cc
}

func containsFold(list []string, v string) bool {
	for _, item := range list {
		if strings.EqualFold(item, v) {
			return true
		}
	}
	return false
}
