package insights

import "fmt"

// baselineText is one static narrative entry
type baselineText struct {
	title string
	body  string
	cta   string
}

// The baseline tables are deterministic facts of the chart, not derived
// statistics, so every card they produce carries high confidence.

var elementBaselines = map[Element]baselineText{
	ElementFire: {
		title: "Fire runs your engine",
		body:  "With fire dominant, your energy tends to arrive in bursts and fade when days lack momentum or novelty. Restlessness is usually a signal you need motion, not rest.",
		cta:   "When your energy dips, try changing activity before reaching for caffeine.",
	},
	ElementEarth: {
		title: "Earth keeps you grounded",
		body:  "With earth dominant, steadiness is your default and disruption costs you more than it costs most people. Routine is not a rut for you, it is fuel.",
		cta:   "Protect one fixed anchor in your day, even on chaotic weeks.",
	},
	ElementAir: {
		title: "Air keeps your mind in motion",
		body:  "With air dominant, your mood tracks the quality of your conversations and inputs. Overload shows up as scattered attention before it shows up as stress.",
		cta:   "When your thoughts race, write three of them down and pick one.",
	},
	ElementWater: {
		title: "Water carries your feelings",
		body:  "With water dominant, you absorb the emotional weather around you. Unexplained heaviness often belongs to a room you were in, not to you.",
		cta:   "After draining company, give yourself twenty quiet minutes before judging your day.",
	},
}

var moonHouseBaselines = map[int]baselineText{
	1:  {title: "Moon in the 1st house", body: "Your feelings sit close to the surface and other people read them quickly. Emotional honesty costs you little and buys you a lot.", cta: "Name the feeling out loud before it names itself for you."},
	2:  {title: "Moon in the 2nd house", body: "Security and comfort steady your moods. Financial or material uncertainty hits your emotional baseline harder than it should on paper.", cta: "When anxious, check whether the worry is actually about security."},
	3:  {title: "Moon in the 3rd house", body: "Talking is how you digest feelings. A day without real conversation often reads as a low-mood day in disguise.", cta: "Call someone rather than scrolling when the evening feels flat."},
	4:  {title: "Moon in the 4th house", body: "Home is your emotional charging dock. Moods improve fastest in familiar territory.", cta: "After hard days, head home before heading out."},
	5:  {title: "Moon in the 5th house", body: "Play and creation regulate you. Weeks without making something tend to drift grey.", cta: "Put one purely-for-fun block on this week's calendar."},
	6:  {title: "Moon in the 6th house", body: "Your feelings live in your body and your routines. Broken sleep or skipped meals surface as mood long before you notice the cause.", cta: "When mood dips, audit sleep and meals before auditing your life."},
	7:  {title: "Moon in the 7th house", body: "One-on-one connection regulates you. Conflict with a close person colors everything else until it is resolved.", cta: "Repair the rupture first; everything else can wait an hour."},
	8:  {title: "Moon in the 8th house", body: "You feel deeply and privately, and shallow check-ins do little for you. Intensity is not a problem to fix.", cta: "Give the big feeling a page in your journal instead of a lid."},
	9:  {title: "Moon in the 9th house", body: "Meaning feeds your moods. Confinement, literal or mental, drains you faster than workload does.", cta: "When stuck, change your horizon: a long walk, a new idea, a plan."},
	10: {title: "Moon in the 10th house", body: "Your emotional weather is tied to how your work is going. Professional setbacks feel personal because for you they are.", cta: "Separate one work metric from your self-worth this week."},
	11: {title: "Moon in the 11th house", body: "Belonging steadies you. Friend time is not a luxury item in your budget, it is infrastructure.", cta: "Schedule the friend plan you keep postponing."},
	12: {title: "Moon in the 12th house", body: "You need genuine solitude to hear yourself. Constant company quietly exhausts you even when it is pleasant.", cta: "Defend one stretch of alone time before the week fills up."},
}

var saturnSignBaselines = map[string]baselineText{
	"aries":       {title: "Saturn in Aries", body: "Your lessons center on initiative: hesitation costs you more than wrong moves do. Pressure eases when you act early.", cta: "Pick the smallest next step and take it today."},
	"taurus":      {title: "Saturn in Taurus", body: "Your lessons center on security and pace. Slow, compounding effort is where your discipline pays off.", cta: "Commit to one small habit you can keep for a month."},
	"gemini":      {title: "Saturn in Gemini", body: "Your lessons center on focus. Scattered commitments are where stress breeds for you.", cta: "Close two open loops before opening a new one."},
	"cancer":      {title: "Saturn in Cancer", body: "Your lessons center on emotional boundaries. Caring for everyone else first is your signature stress pattern.", cta: "Practice one small no this week."},
	"leo":         {title: "Saturn in Leo", body: "Your lessons center on being seen. Fear of judgment masquerades as perfectionism.", cta: "Ship one imperfect thing on purpose."},
	"virgo":       {title: "Saturn in Virgo", body: "Your lessons center on standards. The bar you hold yourself to is the main generator of your stress.", cta: "Define done before you start, then stop at done."},
	"libra":       {title: "Saturn in Libra", body: "Your lessons center on balance in relationships. Unspoken resentment is your heaviest load.", cta: "Say the small true thing before it becomes a big one."},
	"scorpio":     {title: "Saturn in Scorpio", body: "Your lessons center on control and trust. Letting others carry weight is the discipline you are building.", cta: "Delegate one thing you usually grip."},
	"sagittarius": {title: "Saturn in Sagittarius", body: "Your lessons center on commitment. Keeping options open forever is its own cage.", cta: "Choose one direction and give it ninety days."},
	"capricorn":   {title: "Saturn in Capricorn", body: "Your lessons center on ambition and rest. You treat recovery as a reward instead of a requirement.", cta: "Put rest on the schedule with the same weight as work."},
	"aquarius":    {title: "Saturn in Aquarius", body: "Your lessons center on belonging without conforming. Isolation is your stress response, not your nature.", cta: "Reach out to the group you have been avoiding."},
	"pisces":      {title: "Saturn in Pisces", body: "Your lessons center on structure for your sensitivity. Boundaries are not walls, they are banks that keep the river moving.", cta: "End your day with one fixed ritual, however small."},
}

var chironSignBaselines = map[string]baselineText{
	"aries":       {title: "Chiron in Aries", body: "Your tender spot is around asserting that you matter. Self-advocacy feels riskier to you than it is.", cta: "Ask plainly for one thing you need this week."},
	"taurus":      {title: "Chiron in Taurus", body: "Your tender spot is around safety and enoughness. Scarcity thinking flares under stress.", cta: "When spiraling, list three things that are already secure."},
	"gemini":      {title: "Chiron in Gemini", body: "Your tender spot is around being heard. Old dismissals make you over-explain or go silent.", cta: "Say it once, clearly, and let it land."},
	"cancer":      {title: "Chiron in Cancer", body: "Your tender spot is around belonging. You nurture others the way you wish you had been nurtured.", cta: "Direct one act of care at yourself today."},
	"leo":         {title: "Chiron in Leo", body: "Your tender spot is around being celebrated. Praise can feel as uncomfortable as criticism.", cta: "Accept the next compliment with only thank you."},
	"virgo":       {title: "Chiron in Virgo", body: "Your tender spot is around being good enough. Usefulness became your currency early.", cta: "Let one task be merely fine this week."},
	"libra":       {title: "Chiron in Libra", body: "Your tender spot is around partnership. Keeping the peace can cost you your own voice.", cta: "State one preference before asking anyone else theirs."},
	"scorpio":     {title: "Chiron in Scorpio", body: "Your tender spot is around trust and betrayal. Guardedness protected you once and taxes you now.", cta: "Share one small true thing with someone safe."},
	"sagittarius": {title: "Chiron in Sagittarius", body: "Your tender spot is around meaning. Cynicism is how your disappointment dresses up.", cta: "Revisit something you believed in before you got careful."},
	"capricorn":   {title: "Chiron in Capricorn", body: "Your tender spot is around achievement. No finish line has ever felt finished.", cta: "Mark one completed thing as actually complete."},
	"aquarius":    {title: "Chiron in Aquarius", body: "Your tender spot is around fitting in. Being the outsider became an identity before it was a choice.", cta: "Let one group see the unpolished version of you."},
	"pisces":      {title: "Chiron in Pisces", body: "Your tender spot is around boundaries of empathy. Other people's pain finds you easily.", cta: "Notice whose feeling you are carrying right now."},
}

// ChartBaselines produces the static narrative cards for a derived
// profile. Returns nil when no profile is available so chart-dependent
// sections simply disappear instead of erroring.
func ChartBaselines(profile *ChartProfile) []InsightCard {
	if profile == nil {
		return nil
	}

	var cards []InsightCard

	if text, ok := elementBaselines[profile.DominantElement]; ok {
		cards = append(cards, baselineCard(text, fmt.Sprintf("chart:element:%s", profile.DominantElement)))
	}
	if text, ok := moonHouseBaselines[profile.MoonHouse]; ok {
		cards = append(cards, baselineCard(text, fmt.Sprintf("chart:moon_house:%d", profile.MoonHouse)))
	}
	if text, ok := saturnSignBaselines[profile.SaturnSign]; ok {
		cards = append(cards, baselineCard(text, fmt.Sprintf("chart:saturn:%s", profile.SaturnSign)))
	}
	if profile.ChironSign != nil {
		if text, ok := chironSignBaselines[*profile.ChironSign]; ok {
			cards = append(cards, baselineCard(text, fmt.Sprintf("chart:chiron:%s", *profile.ChironSign)))
		}
	}

	return cards
}

func baselineCard(text baselineText, source string) InsightCard {
	return InsightCard{
		Title:        text.title,
		Body:         text.body,
		StatLine:     "From your natal chart",
		CallToAction: text.cta,
		Confidence:   ConfidenceHigh,
		Sources:      []string{source},
	}
}
