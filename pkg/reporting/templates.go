/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: templates.go
Description: HTML template for the human-readable scan report. Renders device
information, unique identifiers, the risk summary, and the app list grouped by
risk level.
*/

package reporting

const reportTemplate = `<!DOCTYPE html>
<html>
<head>
    <title>Liora Privacy Scanner Report</title>
    <style>
        body { font-family: Arial, sans-serif; margin: 40px; }
        h1, h2 { color: #333; }
        .section { margin: 20px 0; padding: 20px; border: 1px solid #ddd; border-radius: 5px; }
        .risk-high { color: #d32f2f; }
        .risk-medium { color: #f57c00; }
        .risk-low { color: #388e3c; }
        .risk-unknown { color: #757575; }
        .identifier { margin: 10px 0; }
        .app-list { margin-top: 10px; }
        .app-item { padding: 10px; border-bottom: 1px solid #eee; }
        .empty { color: #999; }
    </style>
</head>
<body>
    <h1>Liora Privacy Scanner Report</h1>
    <p>Generated on: {{.GeneratedAt}}</p>

    <div class="section">
        <h2>Device Information</h2>
        <p>Manufacturer: {{if .Device.Manufacturer}}{{.Device.Manufacturer}}{{else}}Unknown{{end}}</p>
        <p>Model: {{if .Device.Model}}{{.Device.Model}}{{else}}Unknown{{end}}</p>
        <p>Android Version: {{if .Device.AndroidVersion}}{{.Device.AndroidVersion}}{{else}}Unknown{{end}}</p>
        <p>Security Patch: {{if .Device.SecurityPatch}}{{.Device.SecurityPatch}}{{else}}Unknown{{end}}</p>

        <h3>Device Identifiers</h3>
        <div class="identifier">
            <strong>Android ID:</strong> {{if .Identifiers.AndroidID}}{{.Identifiers.AndroidID}}{{else}}Not available{{end}}
            <br><small>Resets on factory reset</small>
        </div>
        <div class="identifier">
            <strong>Serial Number:</strong> {{if .Identifiers.Serial}}{{.Identifiers.Serial}}{{else}}Not available{{end}}
        </div>
        <div class="identifier">
            <strong>Bluetooth MAC:</strong> {{if .Identifiers.BluetoothMAC}}{{.Identifiers.BluetoothMAC}}{{else}}Not available{{end}}
        </div>
        <div class="identifier">
            <strong>IP Addresses:</strong> {{if .Identifiers.IPAddresses}}{{join .Identifiers.IPAddresses ", "}}{{else}}Not available{{end}}
        </div>
    </div>

    <div class="section">
        <h2>Scan Summary</h2>
        <p>Total Apps Scanned: {{.TotalApps}}</p>
        <p class="risk-high">High Risk Apps: {{.High}}</p>
        <p class="risk-medium">Medium Risk Apps: {{.Medium}}</p>
        <p class="risk-low">Low Risk Apps: {{.Low}}</p>
        <p class="risk-unknown">Not Found in Database: {{.Unknown}}</p>
    </div>

    {{range .Sections}}
    <div class="section">
        <h2 class="{{.Class}}">{{.Title}}</h2>
        <div class="app-list">
            {{if .Apps}}{{range .Apps}}
            <div class="app-item">
                <strong>{{.Name}}</strong> ({{.PackageID}})
                <br>Collection Frequency: {{.Frequency}}
                <br>Data Types: {{if .DataTypes}}{{.DataTypes}}{{else}}None{{end}}
                <br>Requested Permissions: {{.Requested}}
                <br>Install Source: {{if .InstallSource}}{{.InstallSource}}{{else}}Unknown{{end}}
                <br>First Install: {{.FirstInstall}}
                <br>Last Update: {{.LastUpdate}}
            </div>
            {{end}}{{else}}<p class="empty">No apps found in this category</p>{{end}}
        </div>
    </div>
    {{end}}
</body>
</html>
`
