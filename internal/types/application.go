package types

type Gender string

const (
	GenderMale           Gender = "MALE"
	GenderFemale         Gender = "FEMALE"
	GenderOther          Gender = "OTHER"
	GenderPreferNotToSay Gender = "PREFER_NOT_TO_SAY"
)

type DisabilityType string

const (
	DisabilityPhysical     DisabilityType = "PHYSICAL_IMPAIRMENT"
	DisabilityVisual       DisabilityType = "VISUAL_IMPAIRMENT"
	DisabilityHearing      DisabilityType = "HEARING_IMPAIRMENT"
	DisabilityMental       DisabilityType = "MENTAL_IMPAIRMENT"
	DisabilityShortStature DisabilityType = "SHORT_STATURE"
	DisabilityAlbinism     DisabilityType = "ALBINISM"
	DisabilityDeafBlind    DisabilityType = "DEAF_BLIND"
	DisabilityAutism       DisabilityType = "AUTISM"
	DisabilityMultiple     DisabilityType = "MULTIPLE_DISABILITIES"
)

type Occupation string

const (
	OccupationEmployed                      Occupation = "EMPLOYED"
	OccupationAttendingUniversity           Occupation = "ATTENDING_UNIVERSITY_NOT_EMPLOYED"
	OccupationEmployedAttendingUniversity   Occupation = "EMPLOYED_ATTENDING_UNIVERSITY"
	OccupationAdvancedTrainingAndUniversity Occupation = "ATTENDING_ADVANCED_TRAINING_AND_UNIVERSITY"
	OccupationNone                          Occupation = "NOT_EMPLOYED_NOT_IN_SCHOOL_NOT_IN_ANY_TRAINING"
	OccupationInternship                    Occupation = "INTERNSHIP"
)

type Education string

const (
	EducationHighSchool      Education = "HIGH_SCHOOL"
	EducationTechnicalSchool Education = "TECHNICAL_SCHOOL"
	EducationYear1           Education = "YEAR_1_UNIVERSITY"
	EducationYear2           Education = "YEAR_2_UNIVERSITY"
	EducationYear3           Education = "YEAR_3_UNIVERSITY"
	EducationYear4           Education = "YEAR_4_UNIVERSITY"
	EducationFinalYear       Education = "FINAL_YEAR_UNIVERSITY"
	EducationBachelors       Education = "BACHELORS"
	EducationMasters         Education = "MASTERS"
	EducationPhD             Education = "PHD"
	EducationOther           Education = "OTHER"
)

// UniversityLevel reports whether the applicant must name a university.
func (e Education) UniversityLevel() bool {
	switch e {
	case EducationYear1, EducationYear2, EducationYear3, EducationYear4,
		EducationFinalYear, EducationBachelors, EducationMasters, EducationPhD:
		return true
	}
	return false
}

type EnglishProficiency string

const (
	EnglishBeginner     EnglishProficiency = "BEGINNER"
	EnglishIntermediate EnglishProficiency = "INTERMEDIATE"
	EnglishAdvanced     EnglishProficiency = "ADVANCED"
	EnglishFluent       EnglishProficiency = "FLUENT"
	EnglishNative       EnglishProficiency = "NATIVE"
)

type EnglishSkill string

const (
	SkillReading   EnglishSkill = "READING"
	SkillWriting   EnglishSkill = "WRITING"
	SkillSpeaking  EnglishSkill = "SPEAKING"
	SkillListening EnglishSkill = "LISTENING"
)

type Source string

const (
	SourceSocialMedia Source = "SOCIAL_MEDIA"
	SourceFriends     Source = "FRIENDS"
	SourceAlumni      Source = "ALUMNI"
	SourceWebsite     Source = "WEBSITE"
	SourceSchool      Source = "SCHOOL"
	SourceNewspaper   Source = "NEWSPAPER"
	SourceRadio       Source = "RADIO"
	SourceTV          Source = "TV"
	SourceEvent       Source = "EVENT"
	SourceOther       Source = "OTHER"
)

// NeedsSpecification reports whether the applicant must say which friend,
// school, event etc. told them about the programme.
func (s Source) NeedsSpecification() bool {
	switch s {
	case SourceFriends, SourceAlumni, SourceSchool, SourceSocialMedia, SourceEvent, SourceOther:
		return true
	}
	return false
}
