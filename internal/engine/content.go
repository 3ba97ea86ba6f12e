package engine

type PowerMove struct {
	ID          int
	Title       string
	Description string
	ImageName   string
}

type PowerPose struct {
	Title       string
	Description string
	ImageName   string
}

type BattleQuestion struct {
	Scenario      string
	Description   string
	Options       []string
	CorrectAnswer string
}

// PowerMoves returns a copy of the built-in power move pool.
func PowerMoves() []PowerMove { return append([]PowerMove(nil), powerMoves...) }

// PowerPoses returns a copy of the built-in pose pool.
func PowerPoses() []PowerPose { return append([]PowerPose(nil), powerPoses...) }

// BattleQuestions returns a copy of the built-in battle question pool.
func BattleQuestions() []BattleQuestion {
	return append([]BattleQuestion(nil), battleQuestions...)
}

var powerMoves = []PowerMove{
	{1, "Superhero Stance", "Stand with legs shoulder-width apart, hands on hips, chest out. Hold for 2 minutes.", "power_pose_superhero"},
	{2, "Magnetic Gaze", "Practice soft but focused eye contact in the mirror. Don't blink excessively. Project warmth.", "magnetic_gaze_practice"},
	{3, "The Steeple", "Place fingertips together like a steeple while listening to show confidence.", "steepling_hands"},
	{4, "Open Palms", "When speaking, keep palms open and visible. It signals honesty.", "open_palms_gesture"},
	{5, "Chin Lift", "Keep your chin parallel to the floor, not tucked down.", "chin_lift"},
	{6, "Slow Nod", "Nod slowly while listening. Slow nodding signals that you are processing.", "slow_nod"},
	{7, "Shoulder Roll", "Roll shoulders up and back to reset posture and keep the chest open.", "shoulder_roll_back"},
	{8, "Mirroring", "Subtly mimic the posture of the person you are talking to.", "mirroring_intro"},
	{9, "Space Claimer", "Spread your arms or items slightly wider. Occupy your space.", "space_claimer"},
	{10, "Firm Handshake", "Meet web to web. Firm but not crushing.", "firm_handshake_setup"},
	{11, "Lean In", "Lean slightly forward when someone shares something important.", "lean_in_interest"},
	{12, "Lean Back", "Lean back and relax during a negotiation. You are comfortable, not desperate.", "lean_back_power"},
	{13, "The Pause", "Pause for two seconds before answering a question.", "pause_before_speaking"},
	{14, "Controlled Smile", "A slow, genuine smile instead of a nervous quick one.", "controlled_smile"},
	{15, "Purposeful Stride", "Take slightly longer strides than usual.", "walking_stride_length"},
}

var powerPoses = []PowerPose{
	{"The Champion", "Stand tall, arms raised in a V shape, chin slightly up.", "pose_champion"},
	{"The CEO", "Lean back in your chair, hands clasped behind your head, elbows wide.", "pose_ceo"},
	{"The Wonder", "Feet wide apart, hands on hips, chest open.", "pose_wonder"},
	{"The Loomer", "Lean forward slightly, hands planted on a desk in front of you.", "pose_loomer"},
	{"The Steeple", "Hands joined at the fingertips forming a steeple, elbows relaxed.", "pose_steeple"},
	{"The Expander", "Sit with legs stretched out, arms draped over adjacent chairs.", "pose_expander"},
	{"The Percher", "Sit on the edge of a desk, arms relaxed but open.", "pose_percher"},
	{"The Star", "Legs wide, arms stretched out to the sides.", "pose_star"},
	{"The Pillar", "Stand straight, shoulders back, arms relaxed, breathing deeply.", "pose_pillar"},
	{"The Anchor", "Feet shoulder-width apart, hands clasped loosely behind your back.", "pose_anchor"},
}

var battleQuestions = []BattleQuestion{
	{"Negotiation", "Your opponent crosses their arms and leans back. What does it mean?",
		[]string{"Defensiveness / Closed off", "Relaxation / Comfort", "High interest", "Dominance"}, "Defensiveness / Closed off"},
	{"First Impression", "A person you just met gives a quick, one-second eyebrow raise.",
		[]string{"Surprise / Fear", "Anger", "Acknowledgement / Recognition", "Confusion"}, "Acknowledgement / Recognition"},
	{"Sales Meeting", "The prospect starts tapping their fingers or foot repeatedly.",
		[]string{"Deep thought", "Impatience / Boredom", "Agreement", "Excitement"}, "Impatience / Boredom"},
	{"Interview", "The interviewer mirrors your posture and gestures.",
		[]string{"Mockery", "Rapport and Agreement", "Hostility", "Boredom"}, "Rapport and Agreement"},
	{"Dating", "Your date touches their neck or collarbone frequently.",
		[]string{"Relaxation", "Nervousness or Pacifying", "Excitement", "Anger"}, "Nervousness or Pacifying"},
	{"Networking", "Someone stands with their hands on their hips, thumbs pointing forward.",
		[]string{"Submission", "Inquisitiveness", "Dominance or Readiness", "Fatigue"}, "Dominance or Readiness"},
	{"Presentation", "The audience member tilts their head, exposing their neck.",
		[]string{"Disagreement", "Boredom", "Interest and Engagement", "Hostility"}, "Interest and Engagement"},
	{"Conflict", "A coworker rubs their eyes while you're explaining your idea.",
		[]string{"Deceit or Doubt", "Agreement", "Excitement", "Physical exhaustion only"}, "Deceit or Doubt"},
	{"Leadership", "A manager speaks with their palms facing up.",
		[]string{"Authoritative command", "Submission or Honesty", "Aggression", "Deception"}, "Submission or Honesty"},
	{"Public Speaking", "The speaker hides their hands in their pockets or behind their back.",
		[]string{"High confidence", "Relaxation", "Hidden agenda or Nervousness", "Aggression"}, "Hidden agenda or Nervousness"},
	{"Negotiation", "The client suddenly steeples their fingers.",
		[]string{"Confusion", "High confidence / Superiority", "Nervousness", "Boredom"}, "High confidence / Superiority"},
	{"First Impression", "A handshake where their palm is facing downward.",
		[]string{"Equality", "Submissiveness", "Dominance attempting control", "Nervousness"}, "Dominance attempting control"},
	{"Sales Meeting", "The prospect rubs the back of their neck.",
		[]string{"Frustration or Negative emotion", "Deep agreement", "Excitement", "Relaxation"}, "Frustration or Negative emotion"},
	{"Interview", "The candidate frequently touches their nose while answering.",
		[]string{"Honesty", "Potential deceit or Anxiety", "Confidence", "Boredom"}, "Potential deceit or Anxiety"},
	{"Dating", "Your date maintains prolonged, unblinking eye contact.",
		[]string{"Warmth", "Aggression or Intense interest", "Boredom", "Confusion"}, "Aggression or Intense interest"},
	{"Networking", "A person's feet are pointed towards the door while talking to you.",
		[]string{"Deep engagement", "Desire to leave the conversation", "Aggression", "Relaxation"}, "Desire to leave the conversation"},
	{"Presentation", "An audience member rests their chin on their thumb, index finger pointing up.",
		[]string{"Boredom", "Critical evaluation", "Absolute agreement", "Confusion"}, "Critical evaluation"},
	{"Conflict", "A coworker physically steps back after you make a statement.",
		[]string{"Agreement", "Disagreement or Shock", "Excitement", "Relaxation"}, "Disagreement or Shock"},
	{"Leadership", "A CEO stands taking up maximum space, legs wide, chest out.",
		[]string{"Nervousness", "Submission", "Alpha/Power posing", "Fatigue"}, "Alpha/Power posing"},
	{"Public Speaking", "The speaker grips the podium so tightly their knuckles are white.",
		[]string{"Passion", "Confidence", "Extreme anxiety or suppressed anger", "Relaxation"}, "Extreme anxiety or suppressed anger"},
	{"Negotiation", "The opponent suddenly uncrosses their arms and leans forward.",
		[]string{"Increasing defensiveness", "Shift to agreement/interest", "Boredom", "Hostility"}, "Shift to agreement/interest"},
	{"First Impression", "A person smiles, but only their mouth moves, not their eyes.",
		[]string{"Genuine happiness", "Fake or polite smile", "Surprise", "Fear"}, "Fake or polite smile"},
}
