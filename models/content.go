package models

// Personas used in the project deliverables view.
var Personas = []Persona{
	{
		Name:    "Wanjiku",
		Role:    "Rural Voter (Elderly)",
		Context: "Uses a basic feature phone. Struggles with small text. Needs voice assistance.",
		Goal:    "Vote quickly without traveling 50km to a town center.",
	},
	{
		Name:    "Kevin",
		Role:    "Diaspora Voter (London, UK)",
		Context: "Tech-savvy software engineer. Worried about vote counting transparency.",
		Goal:    "Vote securely from abroad and verify his vote on the blockchain.",
	},
}

// CapstoneSections holds the markdown-like report sections.
var CapstoneSections = []CapstoneSection{
	{
		ID:    "prob",
		Title: "Problem & Overview",
		Type:  "text",
		Content: `**Problem:**
Kenya faces recurring challenges in elections:
1. **Low Voter Turnout:** Especially among the 3+ million diaspora due to travel logistics.
2. **Trust Issues:** Fears of rigging/fraud (e.g., 2022 disputes) lead to tension.
3. **Digital Divide:** Rural areas lack high-bandwidth connectivity.

**Solution:**
"Uchaguzi Block" is a blockchain-enabled voting hub.
- **Identity:** Biometric verification linked to IEBC database.
- **Trust:** Ethereum-based immutable ledger for vote recording.
- **Inclusivity:** Multimodal UI (Voice/Text), Offline-first architecture.`,
	},
	{
		ID:    "heuristic",
		Title: "Heuristic Evaluation (Nielsen)",
		Type:  "heuristic",
		Content: `**Target: Existing IEBC Portal**
1. **Visibility of System Status:** (Fail) Users often don't know if their registration is pending or approved.
2. **Match between System and Real World:** (Pass) Uses standard terms like "Polling Station".
3. **Error Prevention:** (Fail) Forms often submit with missing data, only to error out later.

**Improvement in Uchaguzi Block:** Real-time field validation and clear progress steppers.`,
	},
}
