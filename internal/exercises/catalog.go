package exercises

import "sort"

// FIT exercise_category values from the Garmin profile. Only the categories
// the keyword table references are named here.
const (
	categoryBenchPress       = 0
	categoryCalfRaise        = 1
	categoryCardio           = 2
	categoryCarry            = 3
	categoryCore             = 5
	categoryCrunch           = 6
	categoryCurl             = 7
	categoryDeadlift         = 8
	categoryFlye             = 9
	categoryHipRaise         = 10
	categoryHipSwing         = 12
	categoryHyperextension   = 13
	categoryLateralRaise     = 14
	categoryLegCurl          = 15
	categoryLegRaise         = 16
	categoryLunge            = 17
	categoryOlympicLift      = 18
	categoryPlank            = 19
	categoryPlyo             = 20
	categoryPullUp           = 21
	categoryPushUp           = 22
	categoryRow              = 23
	categoryShoulderPress    = 24
	categoryShrug            = 26
	categorySitUp            = 27
	categorySquat            = 28
	categoryTotalBody        = 29
	categoryTricepsExtension = 30
	categoryWarmUp           = 31
	categoryRun              = 32
)

// catalogKeywords maps name fragments to categories. Longest fragment wins,
// so compound names resolve before their generic suffix ("bench press"
// before "press").
var catalogKeywords = map[string]entry{
	"bench press":       {categoryBenchPress, "bench_press"},
	"bench":             {categoryBenchPress, "bench_press"},
	"calf raise":        {categoryCalfRaise, "calf_raise"},
	"ski erg":           {categoryCardio, "cardio"},
	"skierg":            {categoryCardio, "cardio"},
	"rower":             {categoryCardio, "cardio"},
	"assault bike":      {categoryCardio, "cardio"},
	"bike":              {categoryCardio, "cardio"},
	"jump rope":         {categoryCardio, "cardio"},
	"farmer carry":      {categoryCarry, "carry"},
	"farmers carry":     {categoryCarry, "carry"},
	"carry":             {categoryCarry, "carry"},
	"dead bug":          {categoryCore, "core"},
	"bird dog":          {categoryCore, "core"},
	"pallof":            {categoryCore, "core"},
	"crunch":            {categoryCrunch, "crunch"},
	"curl":              {categoryCurl, "curl"},
	"deadlift":          {categoryDeadlift, "deadlift"},
	"rdl":               {categoryDeadlift, "deadlift"},
	"flye":              {categoryFlye, "flye"},
	"fly":               {categoryFlye, "flye"},
	"glute bridge":      {categoryHipRaise, "hip_raise"},
	"hip thrust":        {categoryHipRaise, "hip_raise"},
	"kettlebell swing":  {categoryHipSwing, "hip_swing"},
	"kb swing":          {categoryHipSwing, "hip_swing"},
	"swing":             {categoryHipSwing, "hip_swing"},
	"hyperextension":    {categoryHyperextension, "hyperextension"},
	"back extension":    {categoryHyperextension, "hyperextension"},
	"lateral raise":     {categoryLateralRaise, "lateral_raise"},
	"leg curl":          {categoryLegCurl, "leg_curl"},
	"leg raise":         {categoryLegRaise, "leg_raise"},
	"lunge":             {categoryLunge, "lunge"},
	"split squat":       {categoryLunge, "lunge"},
	"step up":           {categoryLunge, "lunge"},
	"clean":             {categoryOlympicLift, "olympic_lift"},
	"snatch":            {categoryOlympicLift, "olympic_lift"},
	"jerk":              {categoryOlympicLift, "olympic_lift"},
	"plank":             {categoryPlank, "plank"},
	"box jump":          {categoryPlyo, "plyo"},
	"jump squat":        {categoryPlyo, "plyo"},
	"burpee":            {categoryPlyo, "plyo"},
	"pull up":           {categoryPullUp, "pull_up"},
	"pull-up":           {categoryPullUp, "pull_up"},
	"pullup":            {categoryPullUp, "pull_up"},
	"chin up":           {categoryPullUp, "pull_up"},
	"lat pulldown":      {categoryPullUp, "pull_up"},
	"pulldown":          {categoryPullUp, "pull_up"},
	"push up":           {categoryPushUp, "push_up"},
	"push-up":           {categoryPushUp, "push_up"},
	"pushup":            {categoryPushUp, "push_up"},
	"dip":               {categoryPushUp, "push_up"},
	"row":               {categoryRow, "row"},
	"shoulder press":    {categoryShoulderPress, "shoulder_press"},
	"overhead press":    {categoryShoulderPress, "shoulder_press"},
	"ohp":               {categoryShoulderPress, "shoulder_press"},
	"press":             {categoryShoulderPress, "shoulder_press"},
	"shrug":             {categoryShrug, "shrug"},
	"sit up":            {categorySitUp, "sit_up"},
	"situp":             {categorySitUp, "sit_up"},
	"v-up":              {categorySitUp, "sit_up"},
	"squat":             {categorySquat, "squat"},
	"goblet":            {categorySquat, "squat"},
	"thruster":          {categoryTotalBody, "total_body"},
	"man maker":         {categoryTotalBody, "total_body"},
	"triceps extension": {categoryTricepsExtension, "triceps_extension"},
	"tricep extension":  {categoryTricepsExtension, "triceps_extension"},
	"skullcrusher":      {categoryTricepsExtension, "triceps_extension"},
	"pushdown":          {categoryTricepsExtension, "triceps_extension"},
	"warm up":           {categoryWarmUp, "warm_up"},
	"warmup":            {categoryWarmUp, "warm_up"},
	"run":               {categoryRun, "run"},
	"sprint":            {categoryRun, "run"},
}

// NewCatalog builds the production catalog. Call once at startup; the result
// is immutable and safe for concurrent use.
func NewCatalog() *Catalog {
	keys := make([]string, 0, len(catalogKeywords))
	for k := range catalogKeywords {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if len(keys[i]) != len(keys[j]) {
			return len(keys[i]) > len(keys[j])
		}
		return keys[i] < keys[j]
	})
	return &Catalog{entries: catalogKeywords, keys: keys}
}
