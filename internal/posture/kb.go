package posture

// kbEntry is a curated remediation playbook entry for one (category, metric)
// pair.
type kbEntry struct {
	Title       string
	Description string
	Remediation string
	References  []string
}

// knowledgeBase maps "category/metric" to curated remediation guidance.
// Gaps without an entry fall back to a generic template.
var knowledgeBase = map[string]kbEntry{
	CategoryIdentity + "/" + MetricMFAAdoption: {
		Title:       "Increase MFA registration coverage",
		Description: "A portion of user accounts are not registered for multi-factor authentication, leaving them exposed to credential-based attacks.",
		Remediation: "Enable a conditional access policy requiring MFA registration for all users, starting with admin roles, and run a registration campaign for remaining accounts.",
		References: []string{
			"https://learn.microsoft.com/entra/identity/authentication/howto-mfa-getstarted",
			"https://learn.microsoft.com/entra/identity/conditional-access/howto-conditional-access-policy-all-users-mfa",
		},
	},
	CategoryIdentity + "/" + MetricCAPolicies: {
		Title:       "Deploy baseline conditional access policies",
		Description: "Too few conditional access policies are enabled to gate access on location, device state, and sign-in risk.",
		Remediation: "Deploy the Microsoft-recommended baseline: require MFA for admins, block legacy authentication, and require compliant devices for access to sensitive apps.",
		References: []string{
			"https://learn.microsoft.com/entra/identity/conditional-access/concept-conditional-access-policy-common",
		},
	},
	CategorySecureScore + "/" + MetricPercentage: {
		Title:       "Raise Secure Score by completing improvement actions",
		Description: "The tenant's Secure Score sits below the best-practice threshold, indicating unimplemented security controls.",
		Remediation: "Work through the highest-point improvement actions in the Microsoft 365 Defender portal, prioritizing identity and data controls with low user impact.",
		References: []string{
			"https://learn.microsoft.com/defender-xdr/microsoft-secure-score",
		},
	},
	CategoryLicense + "/" + MetricUtilizationPercent: {
		Title:       "Reclaim or assign unused licenses",
		Description: "A meaningful share of purchased licenses is unassigned, which usually means security features paid for are not protecting anyone.",
		Remediation: "Audit unassigned licenses, assign security-bearing SKUs to active users, and remove seats that are genuinely surplus at renewal.",
		References: []string{
			"https://learn.microsoft.com/microsoft-365/commerce/licenses/subscriptions-and-licenses",
		},
	},
	CategoryDataProtection + "/" + MetricCoveragePercent: {
		Title:       "Extend DLP policy coverage",
		Description: "Data loss prevention policies cover only part of the locations holding sensitive content.",
		Remediation: "Extend DLP policies to Exchange, SharePoint, OneDrive, and Teams locations, and tune rules against the sensitive information types observed in reports.",
		References: []string{
			"https://learn.microsoft.com/purview/dlp-learn-about-dlp",
		},
	},
	CategoryEndpoint + "/" + MetricCoveragePercent: {
		Title:       "Bring unmanaged devices under compliance",
		Description: "Enrolled devices that fail compliance checks weaken conditional access guarantees built on device state.",
		Remediation: "Review non-compliant devices in Intune, remediate failing policies (encryption, OS version, defender state), and enforce compliance in conditional access.",
		References: []string{
			"https://learn.microsoft.com/mem/intune/protect/device-compliance-get-started",
		},
	},
	CategoryCloudApps + "/" + MetricCoveragePercent: {
		Title:       "Sanction or block discovered cloud apps",
		Description: "Discovered cloud apps without a sanction decision are unmonitored egress paths for tenant data.",
		Remediation: "Triage the discovered apps list in Defender for Cloud Apps, sanction business-approved apps, and block high-risk unsanctioned ones.",
		References: []string{
			"https://learn.microsoft.com/defender-cloud-apps/governance-discovery",
		},
	},
	CategoryInformationProtection + "/" + MetricCoveragePercent: {
		Title:       "Increase sensitivity label coverage",
		Description: "Files without sensitivity labels bypass encryption and sharing restrictions tied to labeling.",
		Remediation: "Publish auto-labeling policies for the most common sensitive information types and enable default labels for new documents.",
		References: []string{
			"https://learn.microsoft.com/purview/sensitivity-labels",
		},
	},
	CategoryThreatProtection + "/" + MetricResolutionRate: {
		Title:       "Reduce the open alert backlog",
		Description: "A low alert resolution rate means threats may sit uninvestigated past their actionable window.",
		Remediation: "Establish an alert triage rotation, tune noisy detection rules, and configure automated investigation and response for common alert types.",
		References: []string{
			"https://learn.microsoft.com/defender-xdr/m365d-autoir",
		},
	},
}

// lookupKB returns the knowledge base entry for a (category, metric) pair.
func lookupKB(category, metric string) (kbEntry, bool) {
	e, ok := knowledgeBase[category+"/"+metric]
	return e, ok
}
